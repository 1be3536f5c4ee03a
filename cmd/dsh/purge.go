package dsh

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
)

// PurgeCmd should be used to represent the 'dsh purge' command.
type PurgeCmd struct {
	projectCmd
}

// NewPurgeCmd creates a newly configured (Cobra) command.
func NewPurgeCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &PurgeCmd{
		projectCmd: newProjectCmd(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "purge",
		Short: "Removes the project containers, volumes and locally built images.",
		Long: `Removes the project containers, networks, volumes and locally built
images. The database volume is destroyed, so the site is gone until the
next build.`,
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	return cobraCommand, nil
}

// run is configured (via NewPurgeCmd) to be called by the Cobra framework when the command is executed.
func (c *PurgeCmd) run(cmd *cobra.Command, _ []string) error {
	project, _, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := project.Purge(cmd.Context()); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Environment '%s' purged\n", project.Name)

	return err
}
