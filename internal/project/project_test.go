package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shepherd-platform/shepctl/internal/composer"
)

// newProject lays out a minimal project root with the given composer.json
// content and returns its path.
func newProject(t *testing.T, manifest string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, composer.FileName), []byte(manifest), 0o644))

	return root
}

func TestResolve_FromRoot(t *testing.T) {
	t.Parallel()

	root := newProject(t, `{"name": "acme/site"}`)

	paths, err := Resolve(root)
	require.NoError(t, err)

	assert.Equal(t, root, paths.Root)
	assert.Equal(t, filepath.Join(root, "vendor"), paths.VendorDir)
	assert.Equal(t, filepath.Join(root, "web"), paths.WebRoot)
	assert.Equal(t, filepath.Join(root, "web", "sites", "default"), paths.SettingsDir)
	assert.Equal(t, filepath.Join(root, "web", "sites", "default", "settings.php"), paths.SettingsFile)
	assert.Equal(t, filepath.Join(root, "web", "sites", "default", "default.settings.php"), paths.DefaultSettingsFile)
	assert.Equal(t, filepath.Join(root, "web", "sites", "default", "services.yml"), paths.ServicesFile)
	assert.Equal(t, filepath.Join(root, "web", "sites", "default", "files"), paths.PublicFilesDir)

	// Resolution ensures the vendor directory exists.
	info, err := os.Stat(paths.VendorDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolve_WalksUp(t *testing.T) {
	t.Parallel()

	root := newProject(t, `{"name": "acme/site"}`)
	nested := filepath.Join(root, "web", "modules", "custom")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	paths, err := Resolve(nested)
	require.NoError(t, err)
	assert.Equal(t, root, paths.Root)
}

func TestResolve_ManifestOverrides(t *testing.T) {
	t.Parallel()

	root := newProject(t, `{
		"config": {"vendor-dir": "lib/vendor"},
		"extra": {"shepherd": {"webroot": "docroot"}}
	}`)

	paths, err := Resolve(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "lib", "vendor"), paths.VendorDir)
	assert.Equal(t, filepath.Join(root, "docroot"), paths.WebRoot)
	assert.Equal(t, filepath.Join(root, "docroot", "sites", "default", "settings.php"), paths.SettingsFile)
}

func TestResolve_NoManifestAnywhere(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Resolve(dir)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPathResolution)
}

func TestResolve_MalformedManifest(t *testing.T) {
	t.Parallel()

	root := newProject(t, `{"name":`)

	_, err := Resolve(root)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPathResolution)
	require.ErrorIs(t, err, composer.ErrManifestInvalid)
}

func TestResolveFromVendor(t *testing.T) {
	t.Parallel()

	root := newProject(t, `{"name": "acme/site"}`)
	vendor := filepath.Join(root, "vendor")
	require.NoError(t, os.MkdirAll(vendor, 0o755))

	paths, err := ResolveFromVendor(vendor)
	require.NoError(t, err)
	assert.Equal(t, root, paths.Root)
	assert.Equal(t, vendor, paths.VendorDir)
}

func TestResolveFromVendor_Empty(t *testing.T) {
	t.Parallel()

	_, err := ResolveFromVendor("  ")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPathResolution)
}

func TestPaths_Manifest(t *testing.T) {
	t.Parallel()

	root := newProject(t, `{"name": "acme/site"}`)

	paths, err := Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, composer.FileName), paths.Manifest())
}

func TestPaths_BinPath(t *testing.T) {
	t.Parallel()

	root := newProject(t, `{"name": "acme/site"}`)

	paths, err := Resolve(root)
	require.NoError(t, err)

	// No vendor/bin/drush yet: fall back to PATH lookup by name.
	assert.Equal(t, "drush", paths.BinPath("drush"))

	binDir := filepath.Join(paths.VendorDir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	local := filepath.Join(binDir, "drush")
	require.NoError(t, os.WriteFile(local, []byte("#!/bin/sh\n"), 0o755))

	assert.Equal(t, local, paths.BinPath("drush"))
}
