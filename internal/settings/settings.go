// Package settings maintains the Drupal settings.php file: it creates the
// file from Drupal's shipped default template when absent and appends the
// Shepherd-managed configuration block exactly once, guarded by sentinel
// markers.
package settings

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/project"
)

// Sentinel markers delimiting the managed block inside settings.php.
// StartMarker doubles as the idempotence check: when its text is found
// anywhere in the file, the block is considered written and the file is
// left untouched. The strings are a compatibility contract and must not
// change.
const (
	StartMarker = "// START SHEPHERD CONFIG"
	EndMarker   = "// END SHEPHERD CONFIG"
)

// saltBytes random bytes encode to 74 URL-safe characters, comfortably
// above Drupal's recommended salt length.
const saltBytes = 55

const settingsFileMode = 0o644

var (
	// ErrTemplateRead indicates a source template could not be read, either
	// the embedded block template or Drupal's default.settings.php.
	ErrTemplateRead = errors.New("failed to read settings template")

	// ErrWrite indicates settings.php could not be created or appended to.
	ErrWrite = errors.New("failed to write settings file")
)

// Result reports what Ensure did to settings.php.
type Result struct {
	// Path is the settings.php location that was examined.
	Path string

	// Created is true when settings.php was copied from default.settings.php.
	Created bool

	// Appended is true when the managed block was written in this run.
	// False means the sentinel was already present (the steady state).
	Appended bool
}

// templateData carries the values baked into the block at generation time.
// Everything else in the rendered text is a PHP getenv() call evaluated when
// Drupal boots.
type templateData struct {
	HashSalt string
	SQLite   bool
	Redis    bool
	Memcache bool
}

// Generator writes the managed configuration block into a project's
// settings.php.
type Generator struct {
	logger hclog.Logger
	paths  project.Paths
	cfg    *env.Config
}

// NewGenerator returns a Generator for the given project.
func NewGenerator(logger hclog.Logger, paths project.Paths, cfg *env.Config) *Generator {
	return &Generator{
		logger: logger.Named("settings"),
		paths:  paths,
		cfg:    cfg,
	}
}

// Ensure makes settings.php exist and carry the managed block. The file is
// copied from default.settings.php only when absent, and the block is
// appended only when the sentinel is missing, so repeated runs are no-ops.
func (g *Generator) Ensure() (Result, error) {
	return g.run(false)
}

// Recreate recopies default.settings.php over settings.php, discarding any
// prior content, then appends a fresh managed block. The generated secret is
// not preserved across a Recreate.
func (g *Generator) Recreate() (Result, error) {
	return g.run(true)
}

func (g *Generator) run(recopy bool) (Result, error) {
	res := Result{Path: g.paths.SettingsFile}

	exists, err := fileExists(g.paths.SettingsFile)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if !exists || recopy {
		if err := g.copyDefault(); err != nil {
			return res, err
		}
		res.Created = true
	}

	content, err := os.ReadFile(g.paths.SettingsFile)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if strings.Contains(string(content), StartMarker) {
		g.logger.Debug("managed block already present", "path", g.paths.SettingsFile)
		return res, nil
	}

	block, err := g.render()
	if err != nil {
		return res, err
	}

	if err := appendTo(g.paths.SettingsFile, content, block); err != nil {
		return res, err
	}

	res.Appended = true
	g.logger.Info("managed block written", "path", g.paths.SettingsFile)

	return res, nil
}

// copyDefault copies Drupal's default.settings.php over settings.php.
func (g *Generator) copyDefault() error {
	src, err := os.ReadFile(g.paths.DefaultSettingsFile)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplateRead, g.paths.DefaultSettingsFile, err)
	}

	if err := os.WriteFile(g.paths.SettingsFile, src, settingsFileMode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, g.paths.SettingsFile, err)
	}

	g.logger.Info("created settings file from default template", "path", g.paths.SettingsFile)

	return nil
}

// render produces the managed block text. The hash salt is the only value
// substituted into the template; the HASH_SALT environment variable, when
// set, takes precedence over a freshly generated secret.
func (g *Generator) render() ([]byte, error) {
	salt := g.cfg.HashSalt
	if salt == "" {
		var err error
		if salt, err = newSalt(); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.New("settings").Parse(blockTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateRead, err)
	}

	data := templateData{
		HashSalt: salt,
		SQLite:   g.cfg.UseSQLite(),
		Redis:    g.cfg.RedisEnabled,
		Memcache: g.cfg.MemcacheEnabled,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateRead, err)
	}

	return buf.Bytes(), nil
}

// appendTo appends block to path without touching existing content.
func appendTo(path string, existing, block []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	defer f.Close()

	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		block = append([]byte("\n"), block...)
	}

	if _, err := f.Write(block); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	return nil
}

// newSalt generates the hash-salt secret: random bytes in the URL-safe
// base64 alphabet, so the value never contains '+', '/' or '='.
func newSalt() (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating hash salt: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}
