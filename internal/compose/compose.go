// Package compose drives the project's local container environment: the
// docker compose lifecycle, service discovery from the compose file,
// container status through the Docker API, and environment health checks.
// Every lifecycle operation maps 1:1 onto a compose CLI action and fails
// when the underlying command does.
package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/shepherd-platform/shepctl/internal/config"
	"github.com/shepherd-platform/shepctl/internal/project"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

// DefaultLogTail is the number of log lines shown when not following.
const DefaultLogTail = 100

// ErrUnknownService reports a service name absent from the compose file.
var ErrUnknownService = errors.New("unknown compose service")

// Project is the compose project derived from the tool configuration and
// the resolved project paths.
type Project struct {
	// Name is the compose project name, passed as -p.
	Name string

	// File is the absolute compose file path, passed as -f.
	File string

	// Dir is the working directory for compose invocations.
	Dir string

	logger hclog.Logger
	runner shell.Runner
	out    io.Writer
	errOut io.Writer
}

// NewProject assembles the compose project. Command output streams to out
// and errOut; nil writers discard.
func NewProject(logger hclog.Logger, runner shell.Runner, cfg *config.Config, paths project.Paths, out, errOut io.Writer) *Project {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	return &Project{
		Name:   cfg.ProjectName(paths.Root),
		File:   cfg.ComposeFile(paths.Root),
		Dir:    paths.Root,
		logger: logger.Named("compose"),
		runner: runner,
		out:    out,
		errOut: errOut,
	}
}

// Start brings the environment up detached.
func (p *Project) Start(ctx context.Context) error {
	return p.run(ctx, "up", "-d")
}

// Stop stops containers without removing them.
func (p *Project) Stop(ctx context.Context) error {
	return p.run(ctx, "stop")
}

// Down stops and removes containers and networks.
func (p *Project) Down(ctx context.Context) error {
	return p.run(ctx, "down", "--remove-orphans")
}

// Purge is Down plus volumes and locally built images. Destructive: the
// database volume is gone afterwards.
func (p *Project) Purge(ctx context.Context) error {
	return p.run(ctx, "down", "--remove-orphans", "--volumes", "--rmi", "local")
}

// Pull fetches the service images.
func (p *Project) Pull(ctx context.Context) error {
	return p.run(ctx, "pull")
}

// Logs streams service logs. An empty service selects all services.
func (p *Project) Logs(ctx context.Context, service string, tail int, follow bool) error {
	if tail <= 0 {
		tail = DefaultLogTail
	}

	args := []string{"logs", "--tail", strconv.Itoa(tail)}
	if follow {
		args = append(args, "--follow")
	}
	if service != "" {
		if err := p.ValidateService(service); err != nil {
			return err
		}
		args = append(args, service)
	}

	return p.run(ctx, args...)
}

// Shell opens an interactive shell (or runs command when given) in a
// running service container.
func (p *Project) Shell(ctx context.Context, service, user string, command []string) error {
	if err := p.ValidateService(service); err != nil {
		return err
	}

	args := []string{"exec", "-it"}
	if user != "" {
		args = append(args, "--user", user)
	}
	args = append(args, service)
	if len(command) == 0 {
		command = []string{"/bin/bash"}
	}
	args = append(args, command...)

	p.logger.Debug("opening shell", "service", service, "user", user)

	return p.runner.Run(ctx, shell.Command{
		Name:        "docker",
		Args:        p.composeArgs(args...),
		Dir:         p.Dir,
		Interactive: true,
	})
}

// Services lists the service names declared in the compose file, sorted.
func (p *Project) Services() ([]string, error) {
	data, err := os.ReadFile(p.File)
	if err != nil {
		return nil, fmt.Errorf("reading compose file %s: %w", p.File, err)
	}

	var doc struct {
		Services map[string]yaml.Node `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing compose file %s: %w", p.File, err)
	}

	names := make([]string, 0, len(doc.Services))
	for name := range doc.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// ValidateService checks a service name against the compose file.
func (p *Project) ValidateService(name string) error {
	services, err := p.Services()
	if err != nil {
		return err
	}

	for _, s := range services {
		if s == name {
			return nil
		}
	}

	return fmt.Errorf("%w: %s (available: %s)", ErrUnknownService, name, strings.Join(services, ", "))
}

func (p *Project) composeArgs(args ...string) []string {
	return append([]string{"compose", "-f", p.File, "-p", p.Name}, args...)
}

func (p *Project) run(ctx context.Context, args ...string) error {
	command := shell.Command{
		Name:   "docker",
		Args:   p.composeArgs(args...),
		Dir:    p.Dir,
		Stdout: p.out,
		Stderr: p.errOut,
	}

	p.logger.Debug("running compose", "command", command.String())

	return p.runner.Run(ctx, command)
}
