package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shepherd-platform/shepctl/internal/build"
	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/flags"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

// BuildCmd should be used to represent the 'build' command.
type BuildCmd struct {
	*internalcmd.BaseCmd
	envSource      cmdopts.EnvSource
	resolveProject cmdopts.ProjectResolver
	runner         shell.Runner
}

// NewBuildCmd creates a newly configured (Cobra) command.
func NewBuildCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &BuildCmd{
		BaseCmd:        baseCmd,
		envSource:      opts.EnvSource,
		resolveProject: opts.ProjectResolver,
		runner:         opts.Runner,
	}

	cobraCommand := &cobra.Command{
		Use:   "build",
		Short: "Runs the site build pipeline.",
		Long:  c.longDescription(),
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *BuildCmd) longDescription() string {
	return `Runs the site build pipeline: dependency installation, settings.php
generation, permission presets, site install and cache rebuild. Steps run
in a fixed order and the pipeline stops at the first failure. Steps whose
environment toggles are unset report themselves as skipped.`
}

// run is configured (via NewBuildCmd) to be called by the Cobra framework when the command is executed.
func (c *BuildCmd) run(cmd *cobra.Command, _ []string) error {
	paths, err := c.resolveProject(flags.ProjectRoot)
	if err != nil {
		return err
	}

	cfg := c.envSource()

	pipeline := build.New(c.Logger(), cfg, paths, c.runner, cmd.OutOrStdout(), cmd.ErrOrStderr())

	results, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	skipped := 0
	for _, result := range results {
		if result.Skipped {
			skipped++
		}
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Build complete (%d steps, %d skipped)\n", len(results), skipped)

	return err
}
