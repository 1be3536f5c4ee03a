package options

import (
	"github.com/shepherd-platform/shepctl/internal/cmd"
	"github.com/shepherd-platform/shepctl/internal/compose"
	"github.com/shepherd-platform/shepctl/internal/config"
	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/project"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

// EnvSource supplies the platform environment configuration.
type EnvSource func() *env.Config

// ProjectResolver locates the project layout from a starting directory.
type ProjectResolver func(start string) (project.Paths, error)

// DockerClientFn builds the Docker API client used for status reporting.
type DockerClientFn func() (compose.DockerAPI, error)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader    config.Loader
	EnvSource       EnvSource
	ProjectResolver ProjectResolver
	Runner          shell.Runner
	DockerClient    DockerClientFn
}

func defaultOptions() CmdOptions {
	base := &cmd.BaseCmd{}
	return CmdOptions{
		ConfigLoader:    &config.DefaultLoader{},
		EnvSource:       env.FromEnvironment,
		ProjectResolver: project.Resolve,
		Runner:          shell.NewExecRunner(base.Logger()),
		DockerClient: func() (compose.DockerAPI, error) {
			return compose.NewDockerClient()
		},
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		o.ConfigLoader = l
		return nil
	}
}

func WithEnvSource(s EnvSource) CmdOption {
	return func(o *CmdOptions) error {
		o.EnvSource = s
		return nil
	}
}

func WithProjectResolver(r ProjectResolver) CmdOption {
	return func(o *CmdOptions) error {
		o.ProjectResolver = r
		return nil
	}
}

func WithRunner(r shell.Runner) CmdOption {
	return func(o *CmdOptions) error {
		o.Runner = r
		return nil
	}
}

func WithDockerClient(fn DockerClientFn) CmdOption {
	return func(o *CmdOptions) error {
		o.DockerClient = fn
		return nil
	}
}
