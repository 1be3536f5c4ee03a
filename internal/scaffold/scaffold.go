// Package scaffold copies the template files shepctl manages into a target
// project: compose files, the dev Dockerfile, environment and settings
// examples. Projects overlay the built-in manifest through the
// `extra.shepherd.scaffold` section of composer.json.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/shepherd-platform/shepctl/internal/composer"
	"github.com/shepherd-platform/shepctl/internal/project"
)

//go:embed assets
var assets embed.FS

// ErrScaffoldFailed indicates a scaffold entry could not be applied.
var ErrScaffoldFailed = errors.New("scaffolding failed")

// Action describes what happened to one destination.
type Action string

const (
	ActionWritten  Action = "written"
	ActionReplaced Action = "replaced"
	ActionSkipped  Action = "skipped"
)

// FileResult reports the outcome for one destination.
type FileResult struct {
	Dest   string
	Action Action
}

// entry is one resolved scaffold mapping. Either asset (embedded) or source
// (project-relative file) provides the content.
type entry struct {
	dest      string
	asset     string
	source    string
	overwrite bool
}

// Scaffolder applies the file-mapping manifest to a project.
type Scaffolder struct {
	logger hclog.Logger
	paths  project.Paths
}

// New returns a Scaffolder for the given project.
func New(logger hclog.Logger, paths project.Paths) *Scaffolder {
	return &Scaffolder{
		logger: logger.Named("scaffold"),
		paths:  paths,
	}
}

// builtins is the built-in manifest. The compose files are tool-managed and
// replaced on every run; everything else is written once and then owned by
// the project.
func (s *Scaffolder) builtins() []entry {
	webRel, err := filepath.Rel(s.paths.Root, s.paths.WebRoot)
	if err != nil || !filepath.IsLocal(webRel) {
		webRel = composer.DefaultWebRoot
	}

	return []entry{
		{dest: "docker-compose.linux.yml", asset: "assets/docker-compose.linux.yml", overwrite: true},
		{dest: "docker-compose.osx.yml", asset: "assets/docker-compose.osx.yml", overwrite: true},
		{dest: filepath.Join(".docker", "Dockerfile"), asset: "assets/Dockerfile"},
		{dest: ".env.example", asset: "assets/env.example"},
		{dest: ".shepctl.toml", asset: "assets/shepctl.toml"},
		{dest: filepath.Join(webRel, "sites", "default", "settings.local.example.php"), asset: "assets/settings.local.example.php"},
	}
}

// Apply writes the built-in manifest overlaid with the project's own
// scaffold entries. It stops at the first entry that cannot be applied and
// returns the results accumulated so far.
func (s *Scaffolder) Apply(overrides []composer.FileMapping) ([]FileResult, error) {
	entries := merge(s.builtins(), overrides)
	results := make([]FileResult, 0, len(entries))

	for _, e := range entries {
		res, err := s.apply(e)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// merge overlays project entries onto the built-in manifest, keyed by
// destination. An override without a source keeps the built-in asset, so a
// project can flip just the overwrite policy.
func merge(base []entry, overrides []composer.FileMapping) []entry {
	merged := make([]entry, len(base))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.dest] = i
	}

	for _, o := range overrides {
		e := entry{
			dest:      filepath.Clean(filepath.FromSlash(o.Dest)),
			source:    o.Source,
			overwrite: o.Overwrite,
		}

		if i, ok := index[e.dest]; ok {
			if e.source == "" {
				e.asset = merged[i].asset
			}
			merged[i] = e
			continue
		}

		index[e.dest] = len(merged)
		merged = append(merged, e)
	}

	return merged
}

func (s *Scaffolder) apply(e entry) (FileResult, error) {
	if e.dest == "" || e.dest == "." || !filepath.IsLocal(e.dest) {
		return FileResult{}, fmt.Errorf("%w: destination %q must stay inside the project", ErrScaffoldFailed, e.dest)
	}

	destAbs := filepath.Join(s.paths.Root, e.dest)

	exists := false
	if _, err := os.Stat(destAbs); err == nil {
		exists = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return FileResult{}, fmt.Errorf("%w: stat %s: %w", ErrScaffoldFailed, destAbs, err)
	}

	if exists && !e.overwrite {
		s.logger.Debug("skipping existing file", "dest", e.dest)
		return FileResult{Dest: e.dest, Action: ActionSkipped}, nil
	}

	content, err := s.content(e)
	if err != nil {
		return FileResult{}, err
	}

	if err := os.MkdirAll(filepath.Dir(destAbs), 0o755); err != nil {
		return FileResult{}, fmt.Errorf("%w: %s: %w", ErrScaffoldFailed, e.dest, err)
	}

	if err := os.WriteFile(destAbs, content, 0o644); err != nil {
		return FileResult{}, fmt.Errorf("%w: %s: %w", ErrScaffoldFailed, e.dest, err)
	}

	action := ActionWritten
	if exists {
		action = ActionReplaced
	}
	s.logger.Info("scaffolded file", "dest", e.dest, "action", string(action))

	return FileResult{Dest: e.dest, Action: action}, nil
}

// content resolves an entry's bytes: a project-relative source file when
// declared, the embedded asset otherwise.
func (s *Scaffolder) content(e entry) ([]byte, error) {
	if e.source != "" {
		src := filepath.FromSlash(e.source)
		if !filepath.IsLocal(src) {
			return nil, fmt.Errorf("%w: source %q must stay inside the project", ErrScaffoldFailed, e.source)
		}

		data, err := os.ReadFile(filepath.Join(s.paths.Root, src))
		if err != nil {
			return nil, fmt.Errorf("%w: source for %s: %w", ErrScaffoldFailed, e.dest, err)
		}

		return data, nil
	}

	if e.asset == "" {
		return nil, fmt.Errorf("%w: no source or built-in asset for %s", ErrScaffoldFailed, e.dest)
	}

	data, err := assets.ReadFile(e.asset)
	if err != nil {
		return nil, fmt.Errorf("%w: built-in asset for %s: %w", ErrScaffoldFailed, e.dest, err)
	}

	return data, nil
}
