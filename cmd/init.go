package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/composer"
	"github.com/shepherd-platform/shepctl/internal/flags"
	"github.com/shepherd-platform/shepctl/internal/scaffold"
)

// InitCmd should be used to represent the 'init' command.
type InitCmd struct {
	*internalcmd.BaseCmd
	resolveProject cmdopts.ProjectResolver
}

// NewInitCmd creates a newly configured (Cobra) command.
func NewInitCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:        baseCmd,
		resolveProject: opts.ProjectResolver,
	}

	cobraCommand := &cobra.Command{
		Use:   "init",
		Short: "Scaffolds the development files for a Shepherd Drupal project.",
		Long:  c.longDescription(),
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *InitCmd) longDescription() string {
	return `Scaffolds the development files for a Shepherd Drupal project:
compose files, Dockerfile, example environment and local settings, and a
starter tool config. Compose files are refreshed on every run, everything
else is written once and then left alone. Projects override or extend the
set through the 'extra.shepherd.scaffold' section of composer.json.`
}

// run is configured (via NewInitCmd) to be called by the Cobra framework when the command is executed.
func (c *InitCmd) run(cmd *cobra.Command, _ []string) error {
	paths, err := c.resolveProject(flags.ProjectRoot)
	if err != nil {
		return err
	}

	var overrides []composer.FileMapping
	manifest, err := composer.Load(paths.Manifest())
	switch {
	case err == nil:
		overrides = manifest.Scaffold()
	case errors.Is(err, os.ErrNotExist):
		// No manifest, scaffold the built-in set only.
	default:
		return err
	}

	results, err := scaffold.New(c.Logger(), paths).Apply(overrides)
	for _, result := range results {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", result.Action, result.Dest)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Project scaffolding complete (%d files)\n", len(results))

	return err
}
