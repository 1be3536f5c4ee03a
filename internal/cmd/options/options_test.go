package options

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shepherd-platform/shepctl/internal/config"
	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/project"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

type fakeLoader struct {
	config.Loader
}

type fakeRunner struct{}

func (fakeRunner) Run(context.Context, shell.Command) error { return nil }

func TestDefaultOptions(t *testing.T) {
	opts := defaultOptions()

	require.NotNil(t, opts.ConfigLoader)
	require.NotNil(t, opts.EnvSource)
	require.NotNil(t, opts.ProjectResolver)
	require.NotNil(t, opts.Runner)
	require.NotNil(t, opts.DockerClient)
}

func TestNewOptions_NoOverrides(t *testing.T) {
	opts, err := NewOptions()
	assert.NoError(t, err)

	require.NotNil(t, opts.ConfigLoader)
	require.NotNil(t, opts.EnvSource)
	require.NotNil(t, opts.ProjectResolver)
	require.NotNil(t, opts.Runner)
	require.NotNil(t, opts.DockerClient)
}

func TestNewOptions_WithOverrides(t *testing.T) {
	loader := &fakeLoader{}
	runner := fakeRunner{}
	source := func() *env.Config { return &env.Config{} }
	resolver := func(string) (project.Paths, error) { return project.Paths{Root: "/srv/site"}, nil }

	opts, err := NewOptions(
		WithConfigLoader(loader),
		WithRunner(runner),
		WithEnvSource(source),
		WithProjectResolver(resolver),
	)
	require.NoError(t, err)

	require.Equal(t, loader, opts.ConfigLoader)
	require.Equal(t, runner, opts.Runner)

	paths, err := opts.ProjectResolver("")
	require.NoError(t, err)
	require.Equal(t, "/srv/site", paths.Root)
	require.NotNil(t, opts.EnvSource())
}

func TestNewOptions_WithNilOption(t *testing.T) {
	opts, err := NewOptions(nil)
	require.NoError(t, err)
	require.NotNil(t, opts.ConfigLoader)
}

func TestNewOptions_WithFailingOption(t *testing.T) {
	badOpt := func(*CmdOptions) error {
		return errors.New("fail")
	}

	_, err := NewOptions(badOpt)
	require.Error(t, err)
	require.ErrorContains(t, err, "fail")
}
