// Package perms holds the 'perms' command group, which applies filesystem
// permission presets to the project tree.
package perms

import (
	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
)

// NewPermsCmd creates the 'perms' command group.
func NewPermsCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCommand := &cobra.Command{
		Use:   "perms <preset>",
		Short: "Applies a filesystem permission preset to the project.",
		Long: `Applies a filesystem permission preset to the project. The readonly preset
locks the site directory down for serving; the writable preset opens it up
for builds and local development. Paths that cannot be changed are reported
as warnings without failing the command.`,
	}

	constructors := []func(*internalcmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewReadOnlyCmd,
		NewWritableCmd,
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
