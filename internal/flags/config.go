package flags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile  = "SHEPCTL_CONFIG_FILE"
	EnvVarLogPath     = "SHEPCTL_LOG_PATH"
	EnvVarLogLevel    = "SHEPCTL_LOG_LEVEL"
	EnvVarProjectRoot = "SHEPCTL_PROJECT_ROOT"

	// Defaults
	DefaultConfigFile  = ".shepctl.toml"
	DefaultLogPath     = ""
	DefaultLogLevel    = "info"
	DefaultProjectRoot = ""

	// Flag names
	FlagNameConfigFile  = "config-file"
	FlagNameLogPath     = "log-path"
	FlagNameLogLevel    = "log-level"
	FlagNameProjectRoot = "project-root"
)

var (
	ConfigFile  string
	LogPath     string
	LogLevel    string
	ProjectRoot string
)

func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initProjectRoot(fs)
	initLogger(fs)
}

// ConfigFilePath locates the tool config for a project root. An absolute
// --config-file is honored as-is.
func ConfigFilePath(root string) string {
	file := ConfigFile
	if file == "" {
		file = DefaultConfigFile
	}

	if filepath.IsAbs(file) {
		return file
	}

	return filepath.Join(root, file)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarConfigFile)); env != "" {
			ConfigFile = env
		} else {
			ConfigFile = DefaultConfigFile
		}
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to the tool config file, relative to the project root")
}

func initProjectRoot(fs *pflag.FlagSet) {
	if ProjectRoot == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarProjectRoot)); env != "" {
			ProjectRoot = env
		} else {
			ProjectRoot = DefaultProjectRoot
		}
	}
	fs.StringVar(&ProjectRoot, FlagNameProjectRoot, ProjectRoot, "project root directory (default: located by walking up from the working directory)")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for shepctl logs")
}
