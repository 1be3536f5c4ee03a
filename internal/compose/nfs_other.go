//go:build !darwin

package compose

import "context"

func (p *Project) setupNFS(_ context.Context, _ string) error {
	return ErrNFSUnsupported
}

func (p *Project) teardownNFS(_ context.Context) error {
	return ErrNFSUnsupported
}
