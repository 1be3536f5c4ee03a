package dsh

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
)

// ShellCmd should be used to represent the 'dsh shell' command.
type ShellCmd struct {
	projectCmd
	User string
}

// NewShellCmd creates a newly configured (Cobra) command.
func NewShellCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ShellCmd{
		projectCmd: newProjectCmd(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "shell [service] [-- command...]",
		Short: "Opens an interactive shell in a running service container.",
		Long: `Opens an interactive shell in a running service container. The service
defaults to the one configured for the project (usually 'web'). Everything
after '--' runs in the container instead of a shell.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.User,
		"user",
		"",
		"Container user for the shell (default: the tool config user, or the container's own)",
	)

	return cobraCommand, nil
}

// run is configured (via NewShellCmd) to be called by the Cobra framework when the command is executed.
func (c *ShellCmd) run(cmd *cobra.Command, args []string) error {
	project, cfg, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var command []string
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		command = args[at:]
		args = args[:at]
	}

	if len(args) > 1 {
		return fmt.Errorf("at most one service may be named, got %d", len(args))
	}

	service := cfg.ShellService()
	if len(args) == 1 {
		service = args[0]
	}

	user := c.User
	if user == "" {
		user = cfg.ShellUser()
	}

	return project.Shell(cmd.Context(), service, user, command)
}
