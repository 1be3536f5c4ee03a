// Package shell runs the external commands the build pipeline and the dsh
// command group wrap: composer, drush, docker compose. Everything blocks
// until the child process exits; there is no job control.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Command describes a single external command invocation.
type Command struct {
	// Name is the binary to run, resolved via PATH unless it contains a
	// path separator.
	Name string

	// Args are passed verbatim; no shell interpretation happens.
	Args []string

	// Dir is the working directory. Empty means the caller's.
	Dir string

	// Env entries are merged over the process environment, overriding on
	// key collisions.
	Env map[string]string

	// Stdin feeds the command's standard input when the command is not
	// interactive.
	Stdin io.Reader

	// Stdout and Stderr receive the command's output when the command is
	// not interactive. A nil writer discards that stream.
	Stdout io.Writer
	Stderr io.Writer

	// Interactive attaches the caller's stdin, stdout and stderr, for
	// commands like `docker compose exec -it`.
	Interactive bool
}

// String renders the invocation for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}

	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands. The indirection exists so tests can
// substitute a scripted fake.
type Runner interface {
	Run(ctx context.Context, command Command) error
}

var _ Runner = (*ExecRunner)(nil)

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	logger hclog.Logger
}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner(logger hclog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger.Named("exec")}
}

// Run executes the command and waits for it to finish. The returned error
// wraps the exec failure and names the command.
func (r *ExecRunner) Run(ctx context.Context, command Command) error {
	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Dir = command.Dir
	cmd.Env = Environ(command.Env)

	if command.Interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdin = command.Stdin
		cmd.Stdout = command.Stdout
		cmd.Stderr = command.Stderr
	}

	r.logger.Debug("running command", "command", command.String(), "dir", command.Dir)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", command.Name, err)
	}

	return nil
}

// Environ merges overrides onto the current process environment, overrides
// winning on key collisions. Order of the result is unspecified.
func Environ(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return os.Environ()
	}

	envMap := make(map[string]string, len(overrides))
	for _, e := range os.Environ() {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}

	return result
}
