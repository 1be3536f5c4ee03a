package perms

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/flags"
	"github.com/shepherd-platform/shepctl/internal/perms"
)

// WritableCmd should be used to represent the 'perms writable' command.
type WritableCmd struct {
	*internalcmd.BaseCmd
	resolveProject cmdopts.ProjectResolver
}

// NewWritableCmd creates a newly configured (Cobra) command.
func NewWritableCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &WritableCmd{
		BaseCmd:        baseCmd,
		resolveProject: opts.ProjectResolver,
	}

	cobraCommand := &cobra.Command{
		Use:   "writable",
		Short: "Opens the site directory up for builds and local development.",
		Long: `Opens the site directory up for builds and local development: the site
directory is widened first so the settings and services files inside can be
reached, then the files get their write bits back.`,
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	return cobraCommand, nil
}

// run is configured (via NewWritableCmd) to be called by the Cobra framework when the command is executed.
func (c *WritableCmd) run(cmd *cobra.Command, _ []string) error {
	paths, err := c.resolveProject(flags.ProjectRoot)
	if err != nil {
		return err
	}

	applied, problems := perms.Apply(c.Logger(), perms.Writable(paths))
	for _, problem := range problems {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", problem.String())
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Writable permissions applied (%d paths)\n", applied)

	return err
}
