package dsh

import (
	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/compose"
)

// LogsCmd should be used to represent the 'dsh logs' command.
type LogsCmd struct {
	projectCmd
	Tail   int
	Follow bool
}

// NewLogsCmd creates a newly configured (Cobra) command.
func NewLogsCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &LogsCmd{
		projectCmd: newProjectCmd(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "logs [service]",
		Short: "Shows service logs, all services when none is named.",
		RunE:  c.run,
		Args:  cobra.MaximumNArgs(1),
	}

	cobraCommand.Flags().IntVar(
		&c.Tail,
		"tail",
		compose.DefaultLogTail,
		"Number of log lines to show per service",
	)

	cobraCommand.Flags().BoolVarP(
		&c.Follow,
		"follow",
		"f",
		false,
		"Follow log output",
	)

	return cobraCommand, nil
}

// run is configured (via NewLogsCmd) to be called by the Cobra framework when the command is executed.
func (c *LogsCmd) run(cmd *cobra.Command, args []string) error {
	project, _, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	service := ""
	if len(args) == 1 {
		service = args[0]
	}

	return project.Logs(cmd.Context(), service, c.Tail, c.Follow)
}
