// Package dsh holds the 'dsh' command group, the developer shell wrapper
// around the project's docker compose environment.
package dsh

import (
	"io"

	"github.com/spf13/cobra"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/compose"
	"github.com/shepherd-platform/shepctl/internal/config"
	"github.com/shepherd-platform/shepctl/internal/flags"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

// NewDshCmd creates the 'dsh' command group.
func NewDshCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCommand := &cobra.Command{
		Use:   "dsh <command>",
		Short: "Drives the project's docker compose development environment.",
		Long: `Drives the project's docker compose development environment. Every
subcommand maps onto one compose action for the project, so its exit code
follows the underlying command.`,
	}

	constructors := []func(*internalcmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewStartCmd,
		NewStopCmd,
		NewDownCmd,
		NewPurgeCmd,
		NewPullCmd,
		NewLogsCmd,
		NewShellCmd,
		NewStatusCmd,
		NewDoctorCmd,
		NewNFSCmd,
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

// projectCmd carries the collaborators every dsh subcommand resolves the
// compose project with.
type projectCmd struct {
	*internalcmd.BaseCmd
	cfgLoader      config.Loader
	resolveProject cmdopts.ProjectResolver
	runner         shell.Runner
}

func newProjectCmd(baseCmd *internalcmd.BaseCmd, opts cmdopts.CmdOptions) projectCmd {
	return projectCmd{
		BaseCmd:        baseCmd,
		cfgLoader:      opts.ConfigLoader,
		resolveProject: opts.ProjectResolver,
		runner:         opts.Runner,
	}
}

// composeProject resolves the project layout, loads the tool config and
// assembles the compose project around them.
func (c *projectCmd) composeProject(out, errOut io.Writer) (*compose.Project, *config.Config, error) {
	paths, err := c.resolveProject(flags.ProjectRoot)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFilePath(paths.Root))
	if err != nil {
		return nil, nil, err
	}

	return compose.NewProject(c.Logger(), c.runner, cfg, paths, out, errOut), cfg, nil
}
