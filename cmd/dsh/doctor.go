package dsh

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/compose"
	"github.com/shepherd-platform/shepctl/internal/printer"
)

// DoctorCmd should be used to represent the 'dsh doctor' command.
type DoctorCmd struct {
	projectCmd
	Format       internalcmd.OutputFormat
	dockerClient cmdopts.DockerClientFn
}

// NewDoctorCmd creates a newly configured (Cobra) command.
func NewDoctorCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DoctorCmd{
		projectCmd:   newProjectCmd(baseCmd, opts),
		Format:       internalcmd.FormatText, // Default to plain text
		dockerClient: opts.DockerClient,
	}

	cobraCommand := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnoses the local development environment.",
		Long: `Diagnoses the local development environment: required binaries, the
docker daemon, the compose file, and host memory and disk headroom. The
command exits non-zero when a hard requirement is missing.`,
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand, nil
}

// run is configured (via NewDoctorCmd) to be called by the Cobra framework when the command is executed.
func (c *DoctorCmd) run(cmd *cobra.Command, _ []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, &printer.CheckPrinter{})
	if err != nil {
		return err
	}

	project, _, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	// A missing client is reported as a failed daemon check, the other
	// checks still run.
	api, err := c.dockerClient()
	if err != nil {
		c.Logger().Warn("docker client unavailable", "error", err)
		api = nil
	}

	checks := project.Doctor(cmd.Context(), api)

	if err := handler.HandleResults(checks...); err != nil {
		return err
	}

	if compose.Failed(checks) {
		return fmt.Errorf("environment checks failed")
	}

	return nil
}
