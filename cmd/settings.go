package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/flags"
	"github.com/shepherd-platform/shepctl/internal/settings"
)

// SettingsCmd should be used to represent the 'settings' command.
type SettingsCmd struct {
	*internalcmd.BaseCmd
	RecopyDefault  bool
	envSource      cmdopts.EnvSource
	resolveProject cmdopts.ProjectResolver
}

// NewSettingsCmd creates a newly configured (Cobra) command.
func NewSettingsCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &SettingsCmd{
		BaseCmd:        baseCmd,
		envSource:      opts.EnvSource,
		resolveProject: opts.ProjectResolver,
	}

	cobraCommand := &cobra.Command{
		Use:   "settings",
		Short: "Ensures settings.php carries the Shepherd configuration block.",
		Long:  c.longDescription(),
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	cobraCommand.Flags().BoolVar(
		&c.RecopyDefault,
		"recopy-default",
		false,
		"Discard settings.php and recopy Drupal's default.settings.php before appending the configuration block",
	)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *SettingsCmd) longDescription() string {
	return `Ensures the site's settings.php ends with the marker-delimited Shepherd
configuration block. A missing settings.php is first copied from Drupal's
default.settings.php. A file that already carries the block is left
byte-for-byte untouched, so the command is safe to run on every deploy.`
}

// run is configured (via NewSettingsCmd) to be called by the Cobra framework when the command is executed.
func (c *SettingsCmd) run(cmd *cobra.Command, _ []string) error {
	paths, err := c.resolveProject(flags.ProjectRoot)
	if err != nil {
		return err
	}

	cfg := c.envSource()
	if err := cfg.Validate(); err != nil {
		return err
	}

	generator := settings.NewGenerator(c.Logger(), paths, cfg)

	ensure := generator.Ensure
	if c.RecopyDefault {
		ensure = generator.Recreate
	}

	result, err := ensure()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Created:
		_, err = fmt.Fprintf(out, "✓ Created %s with the Shepherd configuration block\n", result.Path)
	case result.Appended:
		_, err = fmt.Fprintf(out, "✓ Appended the Shepherd configuration block to %s\n", result.Path)
	default:
		_, err = fmt.Fprintf(out, "✓ %s already carries the Shepherd configuration block\n", result.Path)
	}

	return err
}
