package composer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `{"name": "acme/site"}`)

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "acme/site", m.Name)
	assert.Equal(t, DefaultVendorDir, m.VendorDir())
	assert.Equal(t, DefaultWebRoot, m.WebRoot())
	assert.Nil(t, m.Scaffold())
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `{
		"name": "acme/site",
		"config": {"vendor-dir": "lib/vendor"},
		"extra": {
			"shepherd": {
				"webroot": "docroot",
				"scaffold": [
					{"dest": "docker-compose.linux.yml", "overwrite": true},
					{"dest": ".docker/Dockerfile", "source": "build/Dockerfile"}
				]
			}
		}
	}`)

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lib/vendor", m.VendorDir())
	assert.Equal(t, "docroot", m.WebRoot())

	scaffold := m.Scaffold()
	require.Len(t, scaffold, 2)
	assert.Equal(t, "docker-compose.linux.yml", scaffold[0].Dest)
	assert.True(t, scaffold[0].Overwrite)
	assert.Equal(t, "build/Dockerfile", scaffold[1].Source)
	assert.False(t, scaffold[1].Overwrite)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrManifestRead)
}

func TestLoad_MalformedJSON(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `{"name": "acme/site"`)

	_, err := Load(path)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrManifestInvalid)
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
		wantIn   string
	}{
		{
			name:     "scaffold entry missing dest",
			manifest: `{"extra": {"shepherd": {"scaffold": [{"source": "x"}]}}}`,
			wantIn:   "dest",
		},
		{
			name:     "unknown shepherd key",
			manifest: `{"extra": {"shepherd": {"docroot": "web"}}}`,
			wantIn:   "docroot",
		},
		{
			name:     "webroot wrong type",
			manifest: `{"extra": {"shepherd": {"webroot": 12}}}`,
			wantIn:   "webroot",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeManifest(t, tc.manifest)

			_, err := Load(path)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrManifestInvalid)
			assert.Contains(t, err.Error(), tc.wantIn)
		})
	}
}

func TestManifest_NilReceiverDefaults(t *testing.T) {
	t.Parallel()

	var m *Manifest

	assert.Equal(t, DefaultVendorDir, m.VendorDir())
	assert.Equal(t, DefaultWebRoot, m.WebRoot())
	assert.Nil(t, m.Scaffold())
}
