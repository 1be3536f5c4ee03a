package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/project"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

// testProjectTree builds a minimal Drupal project layout and resolves it.
// The cleanup restores write bits so TempDir removal succeeds after
// read-only presets ran.
func testProjectTree(t *testing.T) project.Paths {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "composer.json"), []byte("{}\n"), 0o644))

	siteDir := filepath.Join(root, "web", "sites", "default")
	require.NoError(t, os.MkdirAll(siteDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(siteDir, "default.settings.php"),
		[]byte("<?php\n\n// Drupal core default settings.\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(siteDir, "default.services.yml"),
		[]byte("parameters: {}\n"),
		0o644,
	))

	paths, err := project.Resolve(root)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = os.Chmod(paths.SettingsDir, 0o755)
		_ = os.Chmod(paths.SettingsFile, 0o644)
		_ = os.Chmod(paths.ServicesFile, 0o644)
	})

	return paths
}

// resolverFor pins the project resolver to the given paths.
func resolverFor(paths project.Paths) cmdopts.ProjectResolver {
	return func(string) (project.Paths, error) {
		return paths, nil
	}
}

// envSourceFor pins the environment source to the given config.
func envSourceFor(cfg *env.Config) cmdopts.EnvSource {
	return func() *env.Config {
		return cfg
	}
}

type fakeRunner struct {
	commands []shell.Command
	failOn   string
}

func (f *fakeRunner) Run(_ context.Context, command shell.Command) error {
	f.commands = append(f.commands, command)
	if f.failOn != "" && strings.Contains(command.String(), f.failOn) {
		return errors.New("command failed")
	}

	return nil
}
