package perms

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/flags"
	"github.com/shepherd-platform/shepctl/internal/perms"
)

// ReadOnlyCmd should be used to represent the 'perms readonly' command.
type ReadOnlyCmd struct {
	*internalcmd.BaseCmd
	resolveProject cmdopts.ProjectResolver
}

// NewReadOnlyCmd creates a newly configured (Cobra) command.
func NewReadOnlyCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ReadOnlyCmd{
		BaseCmd:        baseCmd,
		resolveProject: opts.ProjectResolver,
	}

	cobraCommand := &cobra.Command{
		Use:   "readonly",
		Short: "Locks the site directory down for serving.",
		Long: `Locks the site directory down for serving: settings and services files
lose their write bits and the site directory itself is narrowed last so the
files inside are reachable while the preset applies.`,
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	return cobraCommand, nil
}

// run is configured (via NewReadOnlyCmd) to be called by the Cobra framework when the command is executed.
func (c *ReadOnlyCmd) run(cmd *cobra.Command, _ []string) error {
	paths, err := c.resolveProject(flags.ProjectRoot)
	if err != nil {
		return err
	}

	applied, problems := perms.Apply(c.Logger(), perms.ReadOnly(paths))
	for _, problem := range problems {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", problem.String())
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Read-only permissions applied (%d paths)\n", applied)

	return err
}
