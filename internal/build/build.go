// Package build runs the site build pipeline: a fixed sequence of steps
// wrapping composer, drush and the permission toggler, executed in order
// with stop-on-first-failure semantics. There is no retry and no rollback;
// after remediation the caller re-runs the whole pipeline.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/project"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

// ErrStepFailed wraps the first step failure; the wrapped message names
// the step so the caller can report where the pipeline stopped.
var ErrStepFailed = errors.New("build step failed")

// Step is one stage of the pipeline.
type Step struct {
	// ID is the stable step identifier used in errors and results.
	ID string

	// Desc is the human-readable progress line.
	Desc string

	// Skip, when non-nil, may exclude the step from a run with a reason.
	Skip func() (reason string, skip bool)

	// Run does the work.
	Run func(ctx context.Context) error
}

// Result records how one step ended.
type Result struct {
	Step       string
	Err        error
	Skipped    bool
	SkipReason string
}

// Pipeline executes the build steps for one project.
type Pipeline struct {
	logger hclog.Logger
	cfg    *env.Config
	paths  project.Paths
	runner shell.Runner
	out    io.Writer
	errOut io.Writer
}

// New returns a Pipeline. Child process output streams to out and errOut;
// nil writers discard.
func New(logger hclog.Logger, cfg *env.Config, paths project.Paths, runner shell.Runner, out, errOut io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	return &Pipeline{
		logger: logger.Named("build"),
		cfg:    cfg,
		paths:  paths,
		runner: runner,
		out:    out,
		errOut: errOut,
	}
}

// Run validates the environment configuration, then executes every step in
// order, stopping at the first failure. It returns the results accumulated
// so far; on failure the error wraps ErrStepFailed and names the step.
func (p *Pipeline) Run(ctx context.Context) ([]Result, error) {
	if err := p.cfg.ValidateForBuild(); err != nil {
		return nil, err
	}

	steps := p.Steps()
	results := make([]Result, 0, len(steps))

	for i, step := range steps {
		label := fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.Desc)

		if step.Skip != nil {
			if reason, skip := step.Skip(); skip {
				fmt.Fprintf(p.out, "%s (skipped: %s)\n", label, reason)
				p.logger.Debug("skipping build step", "step", step.ID, "reason", reason)
				results = append(results, Result{Step: step.ID, Skipped: true, SkipReason: reason})
				continue
			}
		}

		fmt.Fprintln(p.out, label)
		p.logger.Info("running build step", "step", step.ID)

		if err := step.Run(ctx); err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrStepFailed, step.ID, err)
			results = append(results, Result{Step: step.ID, Err: err})

			return results, err
		}

		results = append(results, Result{Step: step.ID})
	}

	return results, nil
}
