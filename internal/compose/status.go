package compose

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	dockerclient "github.com/docker/docker/client"
	"golang.org/x/sync/errgroup"
)

// composeProjectLabel and composeServiceLabel are set by docker compose on
// every container it creates.
const (
	composeProjectLabel = "com.docker.compose.project"
	composeServiceLabel = "com.docker.compose.service"
)

// DockerAPI is the slice of the Docker client used for status reporting.
type DockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	Ping(ctx context.Context) (types.Ping, error)
}

// NewDockerClient builds a Docker client from the environment, negotiating
// the API version with the daemon.
func NewDockerClient() (*dockerclient.Client, error) {
	cli, err := dockerclient.NewClientWithOpts(dockerclient.FromEnv, dockerclient.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}

	return cli, nil
}

// ServiceStatus describes one container belonging to the project.
type ServiceStatus struct {
	// Service is the compose service name.
	Service string `json:"service" yaml:"service"`

	// Container is the container name without the leading slash.
	Container string `json:"container" yaml:"container"`

	// State is the container state, e.g. running or exited.
	State string `json:"state" yaml:"state"`

	// Health is the health check status when the image defines one.
	Health string `json:"health,omitempty" yaml:"health,omitempty"`

	// Ports are the published port bindings, host first.
	Ports []string `json:"ports,omitempty" yaml:"ports,omitempty"`
}

// Status reports every container labelled with the project name, including
// stopped ones. Containers are inspected concurrently for health data.
func (p *Project) Status(ctx context.Context, api DockerAPI) ([]ServiceStatus, error) {
	filterArgs := filters.NewArgs()
	filterArgs.Add("label", composeProjectLabel+"="+p.Name)

	containers, err := api.ContainerList(ctx, container.ListOptions{All: true, Filters: filterArgs})
	if err != nil {
		return nil, fmt.Errorf("listing containers for project %s: %w", p.Name, err)
	}

	statuses := make([]ServiceStatus, len(containers))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, ct := range containers {
		eg.Go(func() error {
			status := ServiceStatus{
				Service:   ct.Labels[composeServiceLabel],
				Container: containerName(ct),
				State:     ct.State,
				Ports:     formatPorts(ct.Ports),
			}
			if status.Service == "" {
				status.Service = status.Container
			}

			inspected, err := api.ContainerInspect(egCtx, ct.ID)
			if err != nil {
				return fmt.Errorf("inspecting container %s: %w", status.Container, err)
			}
			if inspected.State != nil && inspected.State.Health != nil {
				status.Health = inspected.State.Health.Status
			}

			statuses[i] = status

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Service < statuses[j].Service })

	return statuses, nil
}

func containerName(ct types.Container) string {
	if len(ct.Names) == 0 {
		return ct.ID
	}

	return strings.TrimPrefix(ct.Names[0], "/")
}

// formatPorts renders published bindings as host->container pairs and
// collapses the duplicate IPv4/IPv6 entries docker reports per binding.
func formatPorts(ports []types.Port) []string {
	seen := make(map[string]struct{}, len(ports))
	formatted := make([]string, 0, len(ports))

	for _, port := range ports {
		var entry string
		if port.PublicPort != 0 {
			entry = fmt.Sprintf("%d->%d/%s", port.PublicPort, port.PrivatePort, port.Type)
		} else {
			entry = fmt.Sprintf("%d/%s", port.PrivatePort, port.Type)
		}

		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		formatted = append(formatted, entry)
	}

	sort.Strings(formatted)

	return formatted
}
