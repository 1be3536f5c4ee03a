// Package printer holds the text renderers used by commands with a
// --format flag. Structured formats bypass these and marshal the items
// directly.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shepherd-platform/shepctl/internal/cmd/output"
	"github.com/shepherd-platform/shepctl/internal/compose"
)

var _ output.Printer[compose.ServiceStatus] = (*StatusPrinter)(nil)

// StatusPrinter renders container statuses as a fixed-width table.
type StatusPrinter struct {
	headerFunc output.WriteFunc[compose.ServiceStatus]
	footerFunc output.WriteFunc[compose.ServiceStatus]
}

// Header writes the column captions, or a custom header configured via
// SetHeader.
func (p *StatusPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}

	_, _ = fmt.Fprintf(w, "%-12s %-28s %-10s %-10s %s\n", "SERVICE", "CONTAINER", "STATE", "HEALTH", "PORTS")
}

// SetHeader configures a custom header function for the printer.
func (p *StatusPrinter) SetHeader(fn output.WriteFunc[compose.ServiceStatus]) {
	p.headerFunc = fn
}

func (p *StatusPrinter) Item(w io.Writer, status compose.ServiceStatus) error {
	health := status.Health
	if health == "" {
		health = "-"
	}

	ports := "-"
	if len(status.Ports) > 0 {
		ports = strings.Join(status.Ports, ", ")
	}

	_, err := fmt.Fprintf(w, "%-12s %-28s %-10s %-10s %s\n",
		status.Service, status.Container, status.State, health, ports)

	return err
}

// Footer writes a custom footer if one has been configured via SetFooter.
func (p *StatusPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

// SetFooter configures a custom footer function for the printer.
func (p *StatusPrinter) SetFooter(fn output.WriteFunc[compose.ServiceStatus]) {
	p.footerFunc = fn
}
