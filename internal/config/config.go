// Package config loads the optional .shepctl.toml file that tunes the local
// development surface. A project without one runs entirely on defaults, so
// loading never fails just because the file is missing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultShellService is the compose service `dsh shell` attaches to
	// when none is configured.
	DefaultShellService = "web"

	composeFileLinux  = "docker-compose.linux.yml"
	composeFileDarwin = "docker-compose.osx.yml"
)

// Compose rejects project names outside this set.
var projectNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Load reads the TOML configuration at path. A missing file yields a zero
// Config so every accessor falls through to its default.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return &cfg, nil
}

// ProjectName returns the compose project name, deriving one from the
// project root directory when unconfigured.
func (c *Config) ProjectName(root string) string {
	if c.Compose.Project != "" {
		return c.Compose.Project
	}

	return SanitizeProjectName(filepath.Base(root))
}

// ComposeFile returns the absolute compose file path for the project. The
// built-in default depends on the host OS since the scaffolded macOS variant
// mounts code over NFS.
func (c *Config) ComposeFile(root string) string {
	file := c.Compose.File
	if file == "" {
		file = defaultComposeFile()
	}
	if filepath.IsAbs(file) {
		return file
	}

	return filepath.Join(root, file)
}

// ShellService returns the compose service interactive shells attach to.
func (c *Config) ShellService() string {
	if c.Shell.Service != "" {
		return c.Shell.Service
	}

	return DefaultShellService
}

// ShellUser returns the exec user for interactive shells, empty for the
// container's own default.
func (c *Config) ShellUser() string {
	return c.Shell.User
}

// NFSExportPath returns the directory exported over NFS on macOS.
func (c *Config) NFSExportPath(root string) string {
	if c.NFS.ExportPath != "" {
		return c.NFS.ExportPath
	}

	return root
}

// SanitizeProjectName lowers a directory name into the character set compose
// accepts for project names.
func SanitizeProjectName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	out := strings.TrimLeft(b.String(), "-_")
	if out == "" {
		return "shepherd"
	}

	return out
}

func (c *Config) validate() error {
	if p := c.Compose.Project; p != "" && !projectNamePattern.MatchString(p) {
		return fmt.Errorf("compose project name %q must match %s", p, projectNamePattern)
	}

	return nil
}

func defaultComposeFile() string {
	if runtime.GOOS == "darwin" {
		return composeFileDarwin
	}

	return composeFileLinux
}
