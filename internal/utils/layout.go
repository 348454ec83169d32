package utils

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DetailBuilder builds formatted key-value detail views for TUI viewports.
type DetailBuilder struct {
	b            strings.Builder
	labelStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	valueStyle   lipgloss.Style
}

// NewDetailBuilder creates a builder with a fixed-width label column.
// sectionStyle controls the rendering of section headings.
func NewDetailBuilder(labelWidth int, sectionStyle lipgloss.Style) *DetailBuilder {
	return &DetailBuilder{
		labelStyle:   sectionStyle.Width(labelWidth),
		sectionStyle: sectionStyle,
	}
}

// WithValueStyle sets the style applied to row values.
func (d *DetailBuilder) WithValueStyle(s lipgloss.Style) *DetailBuilder {
	d.valueStyle = s
	return d
}

// Row writes a labeled key-value row. Empty values render as "—".
func (d *DetailBuilder) Row(label, value string) {
	fmt.Fprintf(&d.b, "  %s %s\n", d.labelStyle.Render(label), d.valueStyle.Render(OrDash(value)))
}

// Rows writes label/value pairs in order.
func (d *DetailBuilder) Rows(pairs ...[2]string) {
	for _, p := range pairs {
		d.Row(p[0], p[1])
	}
}

// Section writes a section heading like "── title ──────...".
func (d *DetailBuilder) Section(title string) {
	pad := max(40-len(title), 4)
	heading := fmt.Sprintf("  ── %s %s", title, strings.Repeat("─", pad))
	d.b.WriteString(d.sectionStyle.Render(heading) + "\n")
}

// Blank writes an empty line.
func (d *DetailBuilder) Blank() {
	d.b.WriteString("\n")
}

// WriteString appends arbitrary text (for custom formatting not covered by Row/Section).
func (d *DetailBuilder) WriteString(s string) {
	d.b.WriteString(s)
}

// String returns the accumulated content.
func (d *DetailBuilder) String() string {
	return d.b.String()
}
