// Package printer renders resources as box-drawn tables and key/value
// blocks for the non-interactive commands.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxColumnWidth caps a column; longer cells are truncated with "...".
const MaxColumnWidth = 36

// Column kinds pick the cell style.
type ColumnKind int

const (
	ColumnPlain ColumnKind = iota
	ColumnID
	ColumnName
	ColumnStatus
)

type Column struct {
	Title string
	Kind  ColumnKind
}

// Table is a header plus rows of already formatted cells.
type Table struct {
	Columns []Column
	Rows    [][]string
	// Noun is used in the summary line, e.g. "3 VPCs".
	Noun string
}

func (t Table) widths() []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c.Title)
	}
	for _, row := range t.Rows {
		for i := range t.Columns {
			if i >= len(row) {
				continue
			}
			cell := row[i]
			if t.Columns[i].Kind == ColumnStatus {
				cell, _ = statusText(cell)
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], MaxColumnWidth)
	}
	return widths
}

// Render writes the table followed by a summary line.
func (t Table) Render(w io.Writer) error {
	widths := t.widths()
	var sb strings.Builder

	border := func(left, mid, right string) {
		sb.WriteString(BorderStyle.Render(left))
		for i, cw := range widths {
			sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, cw+2)))
			if i < len(widths)-1 {
				sb.WriteString(BorderStyle.Render(mid))
			}
		}
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
	}

	border(TopLeft, TopT, TopRight)

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, c := range t.Columns {
		sb.WriteString(HeaderStyle.Render(" " + padRight(c.Title, widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	border(LeftT, Cross, RightT)

	for _, row := range t.Rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, c := range t.Columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(renderCell(c.Kind, cell, widths[i]))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	border(BottomLeft, BottomT, BottomRight)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  %d %s\n", len(t.Rows), t.Noun)
	return err
}

func renderCell(kind ColumnKind, value string, width int) string {
	switch kind {
	case ColumnID:
		return IDStyle.Render(" " + padRight(value, width) + " ")
	case ColumnName:
		return NameStyle.Render(" " + padRight(value, width) + " ")
	case ColumnStatus:
		text, style := statusText(value)
		return style.Render(" " + padRight(text, width) + " ")
	}
	return " " + padRight(value, width) + " "
}
