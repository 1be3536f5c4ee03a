package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDockerAPI struct {
	containers  []types.Container
	health      map[string]string
	listErr     error
	inspectErr  error
	pingErr     error
	listOptions container.ListOptions
}

func (f *fakeDockerAPI) ContainerList(_ context.Context, options container.ListOptions) ([]types.Container, error) {
	f.listOptions = options

	return f.containers, f.listErr
}

func (f *fakeDockerAPI) ContainerInspect(_ context.Context, containerID string) (types.ContainerJSON, error) {
	if f.inspectErr != nil {
		return types.ContainerJSON{}, f.inspectErr
	}

	inspected := types.ContainerJSON{
		ContainerJSONBase: &types.ContainerJSONBase{State: &types.ContainerState{}},
	}
	if status, ok := f.health[containerID]; ok {
		inspected.State.Health = &types.Health{Status: status}
	}

	return inspected, nil
}

func (f *fakeDockerAPI) Ping(_ context.Context) (types.Ping, error) {
	if f.pingErr != nil {
		return types.Ping{}, f.pingErr
	}

	return types.Ping{APIVersion: "1.47"}, nil
}

func TestStatus_ReportsProjectContainers(t *testing.T) {
	t.Parallel()

	api := &fakeDockerAPI{
		containers: []types.Container{
			{
				ID:    "web-id",
				Names: []string{"/testproj-web-1"},
				State: "running",
				Ports: []types.Port{
					{IP: "0.0.0.0", PrivatePort: 8080, PublicPort: 8080, Type: "tcp"},
					{IP: "::", PrivatePort: 8080, PublicPort: 8080, Type: "tcp"},
				},
				Labels: map[string]string{composeServiceLabel: "web"},
			},
			{
				ID:     "db-id",
				Names:  []string{"/testproj-db-1"},
				State:  "exited",
				Ports:  []types.Port{{PrivatePort: 3306, Type: "tcp"}},
				Labels: map[string]string{composeServiceLabel: "db"},
			},
		},
		health: map[string]string{"web-id": "healthy"},
	}

	p := newTestProject(t, &fakeRunner{})

	statuses, err := p.Status(context.Background(), api)

	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.True(t, api.listOptions.All)
	assert.Equal(t, []string{composeProjectLabel + "=testproj"}, api.listOptions.Filters.Get("label"))

	assert.Equal(t, ServiceStatus{
		Service:   "db",
		Container: "testproj-db-1",
		State:     "exited",
		Ports:     []string{"3306/tcp"},
	}, statuses[0])

	assert.Equal(t, ServiceStatus{
		Service:   "web",
		Container: "testproj-web-1",
		State:     "running",
		Health:    "healthy",
		Ports:     []string{"8080->8080/tcp"},
	}, statuses[1])
}

func TestStatus_FallsBackToContainerName(t *testing.T) {
	t.Parallel()

	api := &fakeDockerAPI{
		containers: []types.Container{
			{ID: "x", Names: []string{"/adhoc"}, State: "running"},
		},
	}

	p := newTestProject(t, &fakeRunner{})

	statuses, err := p.Status(context.Background(), api)

	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "adhoc", statuses[0].Service)
}

func TestStatus_ListError(t *testing.T) {
	t.Parallel()

	api := &fakeDockerAPI{listErr: errors.New("daemon gone")}
	p := newTestProject(t, &fakeRunner{})

	_, err := p.Status(context.Background(), api)

	require.Error(t, err)
	assert.ErrorContains(t, err, "listing containers")
}

func TestStatus_InspectError(t *testing.T) {
	t.Parallel()

	api := &fakeDockerAPI{
		containers: []types.Container{{ID: "x", Names: []string{"/one"}}},
		inspectErr: errors.New("no such container"),
	}
	p := newTestProject(t, &fakeRunner{})

	_, err := p.Status(context.Background(), api)

	require.Error(t, err)
	assert.ErrorContains(t, err, "inspecting container one")
}

func TestFormatPorts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ports []types.Port
		want  []string
	}{
		{
			name: "none",
			want: []string{},
		},
		{
			name:  "published",
			ports: []types.Port{{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"}},
			want:  []string{"8080->80/tcp"},
		},
		{
			name:  "unpublished",
			ports: []types.Port{{PrivatePort: 3306, Type: "tcp"}},
			want:  []string{"3306/tcp"},
		},
		{
			name: "dual stack collapsed",
			ports: []types.Port{
				{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"},
				{IP: "::", PrivatePort: 80, PublicPort: 8080, Type: "tcp"},
			},
			want: []string{"8080->80/tcp"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, formatPorts(tc.ports))
		})
	}
}
