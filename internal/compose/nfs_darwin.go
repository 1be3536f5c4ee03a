package compose

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shepherd-platform/shepctl/internal/shell"
)

func (p *Project) setupNFS(ctx context.Context, exportPath string) error {
	content, err := os.ReadFile(etcExports)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", etcExports, err)
	}

	export := fmt.Sprintf("%q -alldirs -mapall=%d:%d localhost", exportPath, os.Getuid(), os.Getgid())

	updated := upsertExportsBlock(string(content), p.Name, export)
	if updated == string(content) {
		p.logger.Debug("exports entry already present", "project", p.Name, "path", exportPath)
	} else if err := p.writeAsRoot(ctx, etcExports, updated); err != nil {
		return err
	}

	if err := p.ensureResvPortDisabled(ctx); err != nil {
		return err
	}

	return p.restartNFSD(ctx)
}

func (p *Project) teardownNFS(ctx context.Context) error {
	content, err := os.ReadFile(etcExports)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("reading %s: %w", etcExports, err)
	}

	updated, removed := removeExportsBlock(string(content), p.Name)
	if !removed {
		p.logger.Debug("no exports entry for project", "project", p.Name)

		return nil
	}

	if err := p.writeAsRoot(ctx, etcExports, updated); err != nil {
		return err
	}

	return p.restartNFSD(ctx)
}

// writeAsRoot rewrites a root-owned file through sudo tee, content on stdin.
func (p *Project) writeAsRoot(ctx context.Context, path, content string) error {
	return p.runner.Run(ctx, shell.Command{
		Name:   "sudo",
		Args:   []string{"tee", path},
		Stdin:  strings.NewReader(content),
		Stdout: io.Discard,
		Stderr: p.errOut,
	})
}

// ensureResvPortDisabled lets the docker VM mount from a non-reserved
// source port, which macOS nfsd rejects by default.
func (p *Project) ensureResvPortDisabled(ctx context.Context) error {
	content, err := os.ReadFile(nfsConfPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", nfsConfPath, err)
	}
	if strings.Contains(string(content), nfsResvPortLine) {
		return nil
	}

	updated := string(content)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += nfsResvPortLine + "\n"

	return p.writeAsRoot(ctx, nfsConfPath, updated)
}

func (p *Project) restartNFSD(ctx context.Context) error {
	return p.runner.Run(ctx, shell.Command{
		Name:   "sudo",
		Args:   []string{"nfsd", "restart"},
		Stdout: p.out,
		Stderr: p.errOut,
	})
}
