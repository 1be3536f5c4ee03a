package dsh

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
)

// NewNFSCmd creates the 'dsh nfs' command group.
func NewNFSCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCommand := &cobra.Command{
		Use:   "nfs <command>",
		Short: "Manages the macOS NFS export backing the code volume mount.",
		Long: `Manages the macOS NFS export backing the code volume mount. The scaffolded
macOS compose file mounts the project over NFS, which needs an /etc/exports
entry for the project path. Writing it runs through sudo. Only supported on
macOS.`,
	}

	constructors := []func(*internalcmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewNFSSetupCmd,
		NewNFSRemoveCmd,
	}
	for _, newCmd := range constructors {
		subCmd, err := newCmd(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCommand.AddCommand(subCmd)
	}

	return cobraCommand, nil
}

// NFSSetupCmd should be used to represent the 'dsh nfs setup' command.
type NFSSetupCmd struct {
	projectCmd
}

// NewNFSSetupCmd creates a newly configured (Cobra) command.
func NewNFSSetupCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &NFSSetupCmd{
		projectCmd: newProjectCmd(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "setup",
		Short: "Exports the project path over NFS and restarts nfsd.",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

// run is configured (via NewNFSSetupCmd) to be called by the Cobra framework when the command is executed.
func (c *NFSSetupCmd) run(cmd *cobra.Command, _ []string) error {
	project, cfg, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	exportPath := cfg.NFSExportPath(project.Dir)
	if err := project.SetupNFS(cmd.Context(), exportPath); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ NFS export configured for %s\n", exportPath)

	return err
}

// NFSRemoveCmd should be used to represent the 'dsh nfs remove' command.
type NFSRemoveCmd struct {
	projectCmd
}

// NewNFSRemoveCmd creates a newly configured (Cobra) command.
func NewNFSRemoveCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &NFSRemoveCmd{
		projectCmd: newProjectCmd(baseCmd, opts),
	}

	cobraCommand := &cobra.Command{
		Use:   "remove",
		Short: "Removes the project's NFS export and restarts nfsd.",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

// run is configured (via NewNFSRemoveCmd) to be called by the Cobra framework when the command is executed.
func (c *NFSRemoveCmd) run(cmd *cobra.Command, _ []string) error {
	project, _, err := c.composeProject(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := project.TeardownNFS(cmd.Context()); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ NFS export removed for '%s'\n", project.Name)

	return err
}
