package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/shepherd-platform/shepctl/cmd/dsh"
	"github.com/shepherd-platform/shepctl/cmd/perms"
	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*internalcmd.BaseCmd
}

// Execute builds and runs the root command. Errors are returned to main so
// the process exits non-zero.
func Execute() error {
	logger, err := configureLogger()
	if err != nil {
		return err
	}

	rootCmd, err := NewRootCmd(logger)
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

func NewRootCmd(logger hclog.Logger, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	baseCmd := &internalcmd.BaseCmd{}
	baseCmd.SetLogger(logger)

	c := &RootCmd{
		BaseCmd: baseCmd,
	}

	rootCmd := &cobra.Command{
		Use:           "shepctl <command> [args]",
		Short:         "'shepctl' builds and runs Shepherd Drupal projects locally.",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	constructors := []func(*internalcmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,
		NewSettingsCmd,
		NewBuildCmd,
		perms.NewPermsCmd,
		dsh.NewDshCmd,
	}
	for _, newCmd := range constructors {
		subCmd, err := newCmd(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(subCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'shepctl' CLI is the developer interface for Shepherd Drupal projects.
It scaffolds the development files, keeps settings.php in sync with the
platform environment, runs the site build pipeline, and drives the local
docker compose environment.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If SHEPCTL_LOG_PATH is not set, don't log anywhere.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "shepctl",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return "info"
	}
}
