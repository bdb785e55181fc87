// Package ui writes the installer's styled status output.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
)

const defaultWidth = 80

// Printer writes styled lines to an output stream. Colors are dropped
// automatically when the stream is not a terminal.
type Printer struct {
	w     io.Writer
	theme Theme
	tty   bool
	width int
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	tty := IsTerminal(w)
	width := defaultWidth
	if f, ok := w.(*os.File); ok && tty {
		if cols, _, err := term.GetSize(f.Fd()); err == nil && cols > 0 {
			width = cols
		}
	}
	return &Printer{
		w:     w,
		theme: NewTheme(lipgloss.NewRenderer(w)),
		tty:   tty,
		width: width,
	}
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(f.Fd())
}

// Theme returns the printer's styles.
func (p *Printer) Theme() Theme { return p.theme }

// Writer returns the underlying stream.
func (p *Printer) Writer() io.Writer { return p.w }

// Println writes an unstyled line.
func (p *Printer) Println(a ...any) {
	_, _ = fmt.Fprintln(p.w, a...)
}

// Title writes a banner line followed by a blank line.
func (p *Printer) Title(s string) {
	_, _ = fmt.Fprintf(p.w, "\n%s\n\n", p.theme.Title.Render(s))
}

// Heading writes a bold section heading.
func (p *Printer) Heading(s string) {
	_, _ = fmt.Fprintln(p.w, p.theme.Heading.Render(s))
}

func (p *Printer) Info(format string, a ...any) {
	_, _ = fmt.Fprintln(p.w, p.theme.Normal.Render(fmt.Sprintf(format, a...)))
}

func (p *Printer) Muted(format string, a ...any) {
	_, _ = fmt.Fprintln(p.w, p.theme.Muted.Render(fmt.Sprintf(format, a...)))
}

func (p *Printer) Success(format string, a ...any) {
	_, _ = fmt.Fprintln(p.w, p.theme.Success.Render("✓ "+fmt.Sprintf(format, a...)))
}

func (p *Printer) Warn(format string, a ...any) {
	_, _ = fmt.Fprintln(p.w, p.theme.Warning.Render("! "+fmt.Sprintf(format, a...)))
}

func (p *Printer) Error(format string, a ...any) {
	_, _ = fmt.Fprintln(p.w, p.theme.Error.Render("✗ "+fmt.Sprintf(format, a...)))
}

// KeyValue writes an indented "label: value" line with the value accented.
// Long values are truncated to the output width.
func (p *Printer) KeyValue(label, value string) {
	prefix := "  " + label + ": "
	if room := p.width - ansi.StringWidth(prefix); room > 8 && p.tty {
		value = ansi.Truncate(value, room, "…")
	}
	_, _ = fmt.Fprintln(p.w, p.theme.Muted.Render(prefix)+p.theme.Accent.Render(value))
}

// Markdown renders md with glamour. Terminals get the auto-detected style;
// other streams get plain text.
func (p *Printer) Markdown(md string) error {
	style := glamour.WithStandardStyle("notty")
	if p.tty {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(p.width))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = fmt.Fprint(p.w, strings.TrimLeft(out, "\n"))
	return err
}
