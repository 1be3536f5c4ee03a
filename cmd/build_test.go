package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shepherd-platform/shepctl/internal/build"
	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/project"
)

func newBuildCmd(t *testing.T, paths project.Paths, cfg *env.Config, runner *fakeRunner) (*bytes.Buffer, func() error) {
	t.Helper()

	buildCmd, err := NewBuildCmd(&internalcmd.BaseCmd{},
		cmdopts.WithProjectResolver(resolverFor(paths)),
		cmdopts.WithEnvSource(envSourceFor(cfg)),
		cmdopts.WithRunner(runner),
	)
	require.NoError(t, err)

	buildCmd.SetContext(context.Background())

	var output bytes.Buffer
	buildCmd.SetOut(&output)
	buildCmd.SetErr(&output)

	return &output, func() error { return buildCmd.RunE(buildCmd, nil) }
}

func TestBuildCmd_RunsPipeline(t *testing.T) {
	t.Parallel()

	paths := testProjectTree(t)
	runner := &fakeRunner{}

	output, run := newBuildCmd(t, paths, &env.Config{InstallProfile: "standard"}, runner)

	require.NoError(t, run())

	out := output.String()
	assert.Contains(t, out, "[2/13] Validate composer.json")
	assert.Contains(t, out, "✓ Build complete (13 steps, 4 skipped)")

	var seen []string
	for _, command := range runner.commands {
		seen = append(seen, command.String())
	}
	assert.Contains(t, seen, "composer validate --no-check-publish --no-interaction")
	assert.Contains(t, seen, "composer install --prefer-dist --no-progress --no-interaction")
	assert.Contains(t, seen, "drush site-install standard -y")
	assert.Contains(t, seen, "drush cache-rebuild")

	assert.FileExists(t, paths.SettingsFile)
}

func TestBuildCmd_StopsOnFailure(t *testing.T) {
	t.Parallel()

	paths := testProjectTree(t)
	runner := &fakeRunner{failOn: "composer install"}

	output, run := newBuildCmd(t, paths, &env.Config{InstallProfile: "standard"}, runner)

	err := run()

	require.ErrorIs(t, err, build.ErrStepFailed)
	assert.ErrorContains(t, err, "composer-install")
	assert.NotContains(t, output.String(), "✓ Build complete")

	// Validate ran, install failed, nothing after.
	require.Len(t, runner.commands, 2)
}

func TestBuildCmd_RequiresInstallProfile(t *testing.T) {
	t.Parallel()

	paths := testProjectTree(t)
	runner := &fakeRunner{}

	_, run := newBuildCmd(t, paths, &env.Config{}, runner)

	err := run()

	require.ErrorIs(t, err, env.ErrInvalidConfig)
	assert.Empty(t, runner.commands)
}
