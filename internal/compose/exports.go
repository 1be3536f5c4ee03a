package compose

import (
	"context"
	"errors"
	"strings"
)

// ErrNFSUnsupported is returned on platforms without managed NFS exports.
var ErrNFSUnsupported = errors.New("nfs exports are only managed on macOS")

const (
	etcExports      = "/etc/exports"
	nfsConfPath     = "/etc/nfs.conf"
	nfsResvPortLine = "nfs.server.mount.require_resv_port = 0"
)

// SetupNFS exports the project path over NFS for the compose volume mount.
// macOS only.
func (p *Project) SetupNFS(ctx context.Context, exportPath string) error {
	return p.setupNFS(ctx, exportPath)
}

// TeardownNFS removes the project's NFS export. macOS only.
func (p *Project) TeardownNFS(ctx context.Context) error {
	return p.teardownNFS(ctx)
}

func exportsStartMarker(project string) string {
	return "# START SHEPHERD NFS " + project
}

func exportsEndMarker(project string) string {
	return "# END SHEPHERD NFS " + project
}

// upsertExportsBlock replaces the project's marker-delimited block, or
// appends one. Blocks of other projects are left untouched.
func upsertExportsBlock(content, project, export string) string {
	stripped, _ := removeExportsBlock(content, project)
	if stripped != "" && !strings.HasSuffix(stripped, "\n") {
		stripped += "\n"
	}

	return stripped + exportsStartMarker(project) + "\n" + export + "\n" + exportsEndMarker(project) + "\n"
}

// removeExportsBlock strips the project's marker-delimited block and
// reports whether one was present.
func removeExportsBlock(content, project string) (string, bool) {
	start := exportsStartMarker(project)
	end := exportsEndMarker(project)

	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	removed := false
	skipping := false

	for _, line := range lines {
		switch {
		case skipping:
			if strings.TrimSpace(line) == end {
				skipping = false
			}
		case strings.TrimSpace(line) == start:
			skipping = true
			removed = true
		default:
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n"), removed
}
