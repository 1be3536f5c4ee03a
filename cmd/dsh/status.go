package dsh

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/printer"
)

// StatusCmd should be used to represent the 'dsh status' command.
type StatusCmd struct {
	projectCmd
	Format       internalcmd.OutputFormat
	dockerClient cmdopts.DockerClientFn
}

// NewStatusCmd creates a newly configured (Cobra) command.
func NewStatusCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &StatusCmd{
		projectCmd:   newProjectCmd(baseCmd, opts),
		Format:       internalcmd.FormatText, // Default to plain text
		dockerClient: opts.DockerClient,
	}

	cobraCommand := &cobra.Command{
		Use:   "status",
		Short: "Shows the state of the project's containers.",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand, nil
}

// run is configured (via NewStatusCmd) to be called by the Cobra framework when the command is executed.
func (c *StatusCmd) run(cmd *cobra.Command, _ []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, &printer.StatusPrinter{})
	if err != nil {
		return err
	}

	project, _, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	api, err := c.dockerClient()
	if err != nil {
		return handler.HandleError(fmt.Errorf("docker is not available: %w", err))
	}

	statuses, err := project.Status(cmd.Context(), api)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(statuses...)
}
