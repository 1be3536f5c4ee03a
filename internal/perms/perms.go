// Package perms provides the file and directory permission constants and
// the permission toggling used to lock and unlock Drupal configuration
// between build steps.
package perms

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Permission constants for the two site states.
const (
	// LockedFile protects settings.php once a site is installed.
	// Mode 0444: read-only for everyone.
	LockedFile os.FileMode = 0o444

	// SharedFile permissions for settings and services files while they
	// may be edited. Mode 0664: owner/group read/write, others read.
	SharedFile os.FileMode = 0o664

	// LockedDir protects the site directory once a site is installed.
	// Mode 0555: no writes, traversal allowed.
	LockedDir os.FileMode = 0o555

	// SharedDir permissions for directories the web server and build both
	// write to. Mode 0775: owner/group read/write/execute, others read/execute.
	SharedDir os.FileMode = 0o775
)

// Spec pairs one path with its desired mode. Presets are ordered: a
// directory must be writable before files inside it can be created or
// modified, so the writable preset lists the directory first and the
// read-only preset lists it last.
type Spec struct {
	Path string
	Mode os.FileMode
}

// Problem records a per-path failure during Apply. Problems never abort
// the remaining set.
type Problem struct {
	Path string
	Err  error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %v", p.Path, p.Err)
}

// Apply sets each spec's mode in order. A missing path or a failed chmod is
// reported as a warning and skipped; the rest of the set is still applied.
// It returns the number of paths changed and the problems encountered.
func Apply(logger hclog.Logger, specs []Spec) (int, []Problem) {
	applied := 0
	var problems []Problem

	for _, s := range specs {
		if _, err := os.Stat(s.Path); err != nil {
			logger.Warn("Skipping permission target", "path", s.Path, "error", err)
			problems = append(problems, Problem{Path: s.Path, Err: err})
			continue
		}

		if err := os.Chmod(s.Path, s.Mode); err != nil {
			logger.Warn("Failed to change mode", "path", s.Path, "mode", fmt.Sprintf("%#o", s.Mode), "error", err)
			problems = append(problems, Problem{Path: s.Path, Err: err})
			continue
		}

		logger.Debug("Changed mode", "path", s.Path, "mode", fmt.Sprintf("%#o", s.Mode))
		applied++
	}

	return applied, problems
}

// EnsureSharedDirs creates each directory when absent and forces SharedDir
// permissions on it. MkdirAll modes are subject to the umask, so an explicit
// chmod follows creation. Unlike Apply, failure here is an error: the build
// cannot proceed without its shared writable directories.
func EnsureSharedDirs(logger hclog.Logger, dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}

		if err := os.MkdirAll(dir, SharedDir); err != nil {
			return fmt.Errorf("could not ensure shared directory %s: %w", dir, err)
		}

		if err := os.Chmod(dir, SharedDir); err != nil {
			return fmt.Errorf("could not set mode on shared directory %s: %w", dir, err)
		}

		logger.Debug("Ensured shared directory", "path", dir, "mode", fmt.Sprintf("%#o", SharedDir))
	}

	return nil
}
