package perms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shepherd-platform/shepctl/internal/project"
)

func testPaths(root string) project.Paths {
	settingsDir := filepath.Join(root, "web", "sites", "default")

	return project.Paths{
		Root:         root,
		WebRoot:      filepath.Join(root, "web"),
		SettingsDir:  settingsDir,
		SettingsFile: filepath.Join(settingsDir, "settings.php"),
		ServicesFile: filepath.Join(settingsDir, "services.yml"),
	}
}

func TestReadOnly_NarrowsDirectoryLast(t *testing.T) {
	t.Parallel()

	paths := testPaths("/srv/app")
	specs := ReadOnly(paths)

	require.Len(t, specs, 3)
	assert.Equal(t, Spec{Path: paths.SettingsFile, Mode: LockedFile}, specs[0])
	assert.Equal(t, Spec{Path: paths.ServicesFile, Mode: SharedFile}, specs[1])
	assert.Equal(t, Spec{Path: paths.SettingsDir, Mode: LockedDir}, specs[2],
		"directory must be locked after its contents so the chmods inside it still succeed")
}

func TestWritable_WidensDirectoryFirst(t *testing.T) {
	t.Parallel()

	paths := testPaths("/srv/app")
	specs := Writable(paths)

	require.Len(t, specs, 3)
	assert.Equal(t, Spec{Path: paths.SettingsDir, Mode: SharedDir}, specs[0],
		"directory must be opened before touching the files inside it")
	assert.Equal(t, Spec{Path: paths.SettingsFile, Mode: SharedFile}, specs[1])
	assert.Equal(t, Spec{Path: paths.ServicesFile, Mode: SharedFile}, specs[2])
}

func TestPresets_RoundTrip(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	paths := testPaths(root)

	require.NoError(t, os.MkdirAll(paths.SettingsDir, 0o755))
	require.NoError(t, os.WriteFile(paths.SettingsFile, []byte("<?php\n"), 0o644))
	require.NoError(t, os.WriteFile(paths.ServicesFile, []byte("parameters: {}\n"), 0o644))

	logger := hclog.NewNullLogger()

	assertMode := func(path string, want os.FileMode) {
		t.Helper()

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, want, info.Mode().Perm(), "mode mismatch for %s", path)
	}

	applied, problems := Apply(logger, ReadOnly(paths))
	require.Empty(t, problems)
	require.Equal(t, 3, applied)
	assertMode(paths.SettingsFile, LockedFile)
	assertMode(paths.ServicesFile, SharedFile)
	assertMode(paths.SettingsDir, LockedDir)

	applied, problems = Apply(logger, Writable(paths))
	require.Empty(t, problems)
	require.Equal(t, 3, applied)
	assertMode(paths.SettingsFile, SharedFile)
	assertMode(paths.ServicesFile, SharedFile)
	assertMode(paths.SettingsDir, SharedDir)
}
