package config

var _ Loader = (*DefaultLoader)(nil)

// Loader loads the tool configuration for a project.
type Loader interface {
	Load(path string) (*Config, error)
}

// DefaultLoader reads the configuration from a TOML file on disk.
type DefaultLoader struct{}

// Config represents the .shepctl.toml file structure. Every field is
// optional; a project with no config file runs entirely on defaults.
type Config struct {
	Compose ComposeConfig `toml:"compose"`
	Shell   ShellConfig   `toml:"shell"`
	NFS     NFSConfig     `toml:"nfs"`
}

// ComposeConfig selects the compose project name and file.
type ComposeConfig struct {
	// Project names the compose project. Defaults to a sanitized form of
	// the project directory name.
	Project string `toml:"project"`

	// File is the compose file path relative to the project root. The
	// default depends on the host OS.
	File string `toml:"file"`
}

// ShellConfig controls `shepctl dsh shell`.
type ShellConfig struct {
	// Service is the compose service an interactive shell attaches to.
	Service string `toml:"service"`

	// User is passed to the container runtime as the exec user when set.
	User string `toml:"user"`
}

// NFSConfig controls the macOS NFS export managed by `shepctl dsh nfs`.
type NFSConfig struct {
	// ExportPath is the directory exported to the container VM. Defaults
	// to the project root.
	ExportPath string `toml:"export_path"`
}
