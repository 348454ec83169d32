package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Field is one line of a detail block.
type Field struct {
	Key   string
	Value string
}

// Section groups fields under a heading, like the rules of a security group.
type Section struct {
	Title  string
	Fields []Field
}

// Detail renders a titled key/value block followed by optional sections.
func Detail(w io.Writer, title string, fields []Field, sections ...Section) error {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(MutedStyle.Render(strings.Repeat(Horizontal, max(runewidth.StringWidth(title), 40))))
	sb.WriteString("\n")
	writeFields(&sb, fields)

	for _, s := range sections {
		sb.WriteString("\n")
		sb.WriteString(HeaderStyle.Render(s.Title))
		sb.WriteString("\n")
		if len(s.Fields) == 0 {
			sb.WriteString(MutedStyle.Render("  (none)"))
			sb.WriteString("\n")
			continue
		}
		writeFields(&sb, s.Fields)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFields(sb *strings.Builder, fields []Field) {
	keyWidth := 0
	for _, f := range fields {
		keyWidth = max(keyWidth, runewidth.StringWidth(f.Key))
	}
	for _, f := range fields {
		value := f.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(sb, "  %s  %s\n", KeyStyle.Render(padRight(f.Key, keyWidth)), value)
	}
}
