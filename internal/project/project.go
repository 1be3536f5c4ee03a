// Package project resolves the filesystem layout of a Shepherd Drupal
// project. Paths are computed once per invocation and treated as immutable
// by every downstream component.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shepherd-platform/shepctl/internal/composer"
)

// ErrPathResolution indicates the project layout could not be established.
// Nothing downstream can proceed when this is returned.
var ErrPathResolution = errors.New("path resolution failed")

// Paths is the resolved project layout. All values are absolute.
type Paths struct {
	// Root is the project root, the directory holding composer.json.
	Root string

	// VendorDir is Composer's install directory.
	VendorDir string

	// WebRoot is the Drupal docroot.
	WebRoot string

	// SettingsDir is the site directory holding the settings files.
	SettingsDir string

	// SettingsFile is the live Drupal settings file.
	SettingsFile string

	// DefaultSettingsFile is the pristine template shipped by Drupal core.
	DefaultSettingsFile string

	// LocalSettingsFile holds user-maintained overrides, included after the
	// managed block and never touched by regeneration.
	LocalSettingsFile string

	// ServicesFile is the site services definition.
	ServicesFile string

	// PublicFilesDir is the shared writable directory for public files.
	PublicFilesDir string
}

// Manifest returns the absolute path of the project's composer.json.
func (p Paths) Manifest() string {
	return filepath.Join(p.Root, composer.FileName)
}

// Resolve locates the project root and derives the path set. With an empty
// start the working directory is used. Unless start names the root
// directly (it contains composer.json), parents are searched upward until
// one does. composer.json overrides for the vendor dir and web root are
// honored when the manifest parses; the vendor directory is created when
// absent, since every downstream step assumes it exists.
func Resolve(start string) (Paths, error) {
	start = strings.TrimSpace(start)
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Paths{}, fmt.Errorf("%w: cannot determine working directory: %w", ErrPathResolution, err)
		}
		start = wd
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return Paths{}, fmt.Errorf("%w: %s: %w", ErrPathResolution, start, err)
	}

	root, err := findRoot(abs)
	if err != nil {
		return Paths{}, err
	}

	return fromRoot(root)
}

// ResolveFromVendor anchors resolution on the dependency-install directory:
// its parent is the project root. This is the contract Composer-driven
// invocations rely on.
func ResolveFromVendor(vendorDir string) (Paths, error) {
	vendorDir = strings.TrimSpace(vendorDir)
	if vendorDir == "" {
		return Paths{}, fmt.Errorf("%w: vendor directory not specified", ErrPathResolution)
	}

	abs, err := filepath.Abs(vendorDir)
	if err != nil {
		return Paths{}, fmt.Errorf("%w: %s: %w", ErrPathResolution, vendorDir, err)
	}

	return fromRoot(filepath.Dir(abs))
}

// findRoot walks upward from dir until a directory containing composer.json
// is found.
func findRoot(dir string) (string, error) {
	for current := dir; ; {
		if _, err := os.Stat(filepath.Join(current, composer.FileName)); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: no %s found walking up from %s", ErrPathResolution, composer.FileName, dir)
		}
		current = parent
	}
}

func fromRoot(root string) (Paths, error) {
	vendorDir := composer.DefaultVendorDir
	webRoot := composer.DefaultWebRoot

	// Overrides come from composer.json when it is present and parseable.
	// A malformed manifest is fatal here: guessing a layout invites
	// scaffolding into the wrong directories.
	manifestPath := filepath.Join(root, composer.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := composer.Load(manifestPath)
		if err != nil {
			return Paths{}, fmt.Errorf("%w: %w", ErrPathResolution, err)
		}
		vendorDir = m.VendorDir()
		webRoot = m.WebRoot()
	}

	if !filepath.IsAbs(vendorDir) {
		vendorDir = filepath.Join(root, vendorDir)
	}
	if !filepath.IsAbs(webRoot) {
		webRoot = filepath.Join(root, webRoot)
	}

	if err := os.MkdirAll(vendorDir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("%w: cannot create vendor directory %s: %w", ErrPathResolution, vendorDir, err)
	}

	settingsDir := filepath.Join(webRoot, "sites", "default")

	return Paths{
		Root:                root,
		VendorDir:           vendorDir,
		WebRoot:             webRoot,
		SettingsDir:         settingsDir,
		SettingsFile:        filepath.Join(settingsDir, "settings.php"),
		DefaultSettingsFile: filepath.Join(settingsDir, "default.settings.php"),
		LocalSettingsFile:   filepath.Join(settingsDir, "settings.local.php"),
		ServicesFile:        filepath.Join(settingsDir, "services.yml"),
		PublicFilesDir:      filepath.Join(settingsDir, "files"),
	}, nil
}

// BinPath returns the path of an executable installed under vendor/bin if
// present, falling back to the bare name for PATH lookup. Build steps use
// this to prefer project-local drush and friends.
func (p Paths) BinPath(name string) string {
	local := filepath.Join(p.VendorDir, "bin", name)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local
	}
	return name
}
