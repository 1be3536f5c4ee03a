package dsh

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
)

// PullCmd should be used to represent the 'dsh pull' command.
type PullCmd struct {
	projectCmd
}

// NewPullCmd creates a newly configured (Cobra) command.
func NewPullCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &PullCmd{
		projectCmd: newProjectCmd(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "pull",
		Short: "Pulls the service images for the project.",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

// run is configured (via NewPullCmd) to be called by the Cobra framework when the command is executed.
func (c *PullCmd) run(cmd *cobra.Command, _ []string) error {
	project, _, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := project.Pull(cmd.Context()); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Images for '%s' pulled\n", project.Name)

	return err
}
