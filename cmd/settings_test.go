package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalcmd "github.com/shepherd-platform/shepctl/internal/cmd"
	cmdopts "github.com/shepherd-platform/shepctl/internal/cmd/options"
	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/project"
	"github.com/shepherd-platform/shepctl/internal/settings"
)

func newSettingsCmd(t *testing.T, paths project.Paths, cfg *env.Config) (*bytes.Buffer, func() error) {
	t.Helper()

	settingsCmd, err := NewSettingsCmd(&internalcmd.BaseCmd{},
		cmdopts.WithProjectResolver(resolverFor(paths)),
		cmdopts.WithEnvSource(envSourceFor(cfg)),
	)
	require.NoError(t, err)

	var output bytes.Buffer
	settingsCmd.SetOut(&output)
	settingsCmd.SetErr(&output)

	return &output, func() error { return settingsCmd.RunE(settingsCmd, nil) }
}

func TestSettingsCmd_CreatesSettings(t *testing.T) {
	t.Parallel()

	paths := testProjectTree(t)

	output, run := newSettingsCmd(t, paths, &env.Config{})

	require.NoError(t, run())

	content, err := os.ReadFile(paths.SettingsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), settings.StartMarker)
	assert.Contains(t, output.String(), "✓ Created")
}

func TestSettingsCmd_SecondRunIsNoOp(t *testing.T) {
	t.Parallel()

	paths := testProjectTree(t)

	_, run := newSettingsCmd(t, paths, &env.Config{})
	require.NoError(t, run())

	before, err := os.ReadFile(paths.SettingsFile)
	require.NoError(t, err)

	output, runAgain := newSettingsCmd(t, paths, &env.Config{})
	require.NoError(t, runAgain())

	after, err := os.ReadFile(paths.SettingsFile)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Contains(t, output.String(), "already carries")
}

func TestSettingsCmd_RecopyDefault(t *testing.T) {
	t.Parallel()

	paths := testProjectTree(t)
	require.NoError(t, os.WriteFile(paths.SettingsFile, []byte("<?php\n// site-local edits\n"), 0o644))

	settingsCmd, err := NewSettingsCmd(&internalcmd.BaseCmd{},
		cmdopts.WithProjectResolver(resolverFor(paths)),
		cmdopts.WithEnvSource(envSourceFor(&env.Config{})),
	)
	require.NoError(t, err)
	require.NoError(t, settingsCmd.Flags().Set("recopy-default", "true"))

	var output bytes.Buffer
	settingsCmd.SetOut(&output)
	settingsCmd.SetErr(&output)

	require.NoError(t, settingsCmd.RunE(settingsCmd, nil))

	content, err := os.ReadFile(paths.SettingsFile)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "site-local edits")
	assert.Contains(t, string(content), settings.StartMarker)
}

func TestSettingsCmd_RejectsConflictingCacheBackends(t *testing.T) {
	t.Parallel()

	paths := testProjectTree(t)

	_, run := newSettingsCmd(t, paths, &env.Config{RedisEnabled: true, MemcacheEnabled: true})

	err := run()

	require.ErrorIs(t, err, env.ErrInvalidConfig)
	assert.NoFileExists(t, paths.SettingsFile)
}
