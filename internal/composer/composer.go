// Package composer provides read-only access to the parts of a project's
// composer.json that shepctl consumes: the vendor directory location and
// the optional `extra.shepherd` section (web root, scaffold file mappings).
package composer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// FileName is the dependency manifest expected at the project root.
	FileName = "composer.json"

	// DefaultVendorDir is Composer's default install directory.
	DefaultVendorDir = "vendor"

	// DefaultWebRoot is the conventional Drupal docroot for Shepherd projects.
	DefaultWebRoot = "web"
)

var (
	ErrManifestRead    = errors.New("failed to read composer manifest")
	ErrManifestInvalid = errors.New("composer manifest invalid")
)

// Manifest is the subset of composer.json this tool reads. All other keys
// are ignored; the file is never written.
type Manifest struct {
	Name   string `json:"name"`
	Config struct {
		VendorDir string `json:"vendor-dir"`
	} `json:"config"`
	Extra struct {
		Shepherd *Extra `json:"shepherd"`
	} `json:"extra"`
}

// Extra is the `extra.shepherd` section of composer.json.
type Extra struct {
	WebRoot  string        `json:"webroot,omitempty"`
	Scaffold []FileMapping `json:"scaffold,omitempty"`
}

// FileMapping declares one scaffold entry: a destination path (relative to
// the project root) and the source that fills it. An empty Source selects
// the built-in asset registered for the destination.
type FileMapping struct {
	Dest      string `json:"dest"`
	Source    string `json:"source,omitempty"`
	Overwrite bool   `json:"overwrite,omitempty"`
}

// Load parses the manifest at path. A present `extra.shepherd` section is
// validated against the embedded schema before use; validation failures
// report every offending field.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestRead, path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestInvalid, path, err)
	}

	if m.Extra.Shepherd != nil {
		if err := validateExtra(data); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrManifestInvalid, path, err)
		}
	}

	return &m, nil
}

// VendorDir returns the configured vendor directory, relative to the
// project root unless configured absolute.
func (m *Manifest) VendorDir() string {
	if m == nil {
		return DefaultVendorDir
	}
	if dir := strings.TrimSpace(m.Config.VendorDir); dir != "" {
		return dir
	}
	return DefaultVendorDir
}

// WebRoot returns the configured docroot, relative to the project root.
func (m *Manifest) WebRoot() string {
	if m == nil || m.Extra.Shepherd == nil {
		return DefaultWebRoot
	}
	if root := strings.TrimSpace(m.Extra.Shepherd.WebRoot); root != "" {
		return root
	}
	return DefaultWebRoot
}

// Scaffold returns the project's scaffold mapping entries, which overlay the
// built-in manifest by destination. Nil when no section is present.
func (m *Manifest) Scaffold() []FileMapping {
	if m == nil || m.Extra.Shepherd == nil {
		return nil
	}
	return m.Extra.Shepherd.Scaffold
}

// validateExtra checks the raw `extra.shepherd` subtree against the schema.
func validateExtra(manifest []byte) error {
	var raw struct {
		Extra struct {
			Shepherd json.RawMessage `json:"shepherd"`
		} `json:"extra"`
	}
	if err := json.Unmarshal(manifest, &raw); err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewBytesLoader(extraSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw.Extra.Shepherd)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resErr := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", resErr.Field(), resErr.Description()))
		}
		return fmt.Errorf("extra.shepherd: %s", strings.Join(details, "; "))
	}

	return nil
}
