package printer

import (
	"fmt"
	"io"

	"github.com/shepherd-platform/shepctl/internal/cmd/output"
	"github.com/shepherd-platform/shepctl/internal/compose"
)

var _ output.Printer[compose.Check] = (*CheckPrinter)(nil)

// CheckPrinter renders doctor checks one per line.
type CheckPrinter struct {
	headerFunc output.WriteFunc[compose.Check]
	footerFunc output.WriteFunc[compose.Check]
}

// Header writes a custom header if one has been configured via SetHeader.
func (p *CheckPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

// SetHeader configures a custom header function for the printer.
func (p *CheckPrinter) SetHeader(fn output.WriteFunc[compose.Check]) {
	p.headerFunc = fn
}

func (p *CheckPrinter) Item(w io.Writer, check compose.Check) error {
	_, err := fmt.Fprintf(w, "%-6s %-16s %s\n", "["+string(check.Status)+"]", check.Name, check.Detail)

	return err
}

// Footer writes a custom footer if one has been configured via SetFooter.
func (p *CheckPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

// SetFooter configures a custom footer function for the printer.
func (p *CheckPrinter) SetFooter(fn output.WriteFunc[compose.Check]) {
	p.footerFunc = fn
}
