// Package console writes the human-facing progress output of a session.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Widths of the banner and section rules.
const (
	BannerWidth  = 70
	SectionWidth = 60
)

// Console prints banners, sections and plain lines to a writer.
// Styling is only applied when the writer is a color-capable terminal.
type Console struct {
	w       io.Writer
	heading lipgloss.Style
	rule    lipgloss.Style
}

// New creates a console bound to w.
func New(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		heading: r.NewStyle().Bold(true),
		rule:    r.NewStyle().Foreground(lipgloss.Color("#667eea")),
	}
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer {
	return c.w
}

// Banner prints a framed block of title lines, preceded by a blank line.
func (c *Console) Banner(lines ...string) {
	c.frame(BannerWidth, "\n", lines...)
}

// Section prints a phase heading.
func (c *Console) Section(title string) {
	c.frame(SectionWidth, "\n", title)
}

func (c *Console) frame(width int, lead string, lines ...string) {
	rule := c.rule.Render(strings.Repeat("=", width))
	fmt.Fprint(c.w, lead)
	fmt.Fprintln(c.w, rule)
	for _, line := range lines {
		fmt.Fprintln(c.w, c.heading.Render(" "+line))
	}
	fmt.Fprintln(c.w, rule)
}

// Printf prints a formatted line.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
}

// Println prints a line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.w, args...)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
