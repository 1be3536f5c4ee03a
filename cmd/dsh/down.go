package dsh

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
)

// DownCmd should be used to represent the 'dsh down' command.
type DownCmd struct {
	projectCmd
}

// NewDownCmd creates a newly configured (Cobra) command.
func NewDownCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DownCmd{
		projectCmd: newProjectCmd(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "down",
		Short: "Stops and removes the project containers and networks.",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

// run is configured (via NewDownCmd) to be called by the Cobra framework when the command is executed.
func (c *DownCmd) run(cmd *cobra.Command, _ []string) error {
	project, _, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := project.Down(cmd.Context()); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Environment '%s' removed\n", project.Name)

	return err
}
