package scenario

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/pilar/internal/document"
)

// Outline renders a document tree as a nested markdown list.
func Outline(root *document.Spec) string {
	var b strings.Builder
	for _, child := range root.Content {
		writeOutline(&b, child, 0)
	}
	return b.String()
}

func writeOutline(b *strings.Builder, s *document.Spec, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("- ")
	switch s.Type {
	case document.TypeColumnGroup:
		fmt.Fprintf(b, "**columns** (%d)", len(s.Content))
	case document.TypeColumn:
		fmt.Fprintf(b, "column `%.2f`", s.Attrs.Width)
	case document.TypeHeading:
		fmt.Fprintf(b, "h%d %s", s.Attrs.Level, quote(s.Text))
	default:
		b.WriteString(quote(s.Text))
	}
	b.WriteString("\n")
	for _, child := range s.Content {
		writeOutline(b, child, depth+1)
	}
}

func quote(text string) string {
	if text == "" {
		return "_empty_"
	}
	return fmt.Sprintf("%q", text)
}

// Markdown renders a scenario result as a markdown document.
func (r Result) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", strings.ToUpper(r.Scenario.Name), r.Scenario.Title)
	fmt.Fprintf(&b, "%s\n\n", r.Scenario.Summary)
	b.WriteString("## Before\n\n")
	b.WriteString(Outline(r.Before))
	if r.After != nil {
		b.WriteString("\n## After\n\n")
		b.WriteString(Outline(r.After))
		fmt.Fprintf(&b, "\ncursor at `%d`", r.Selection.Head)
		if r.CanUndo {
			b.WriteString(", one undo step recorded")
		}
		b.WriteString("\n")
	}
	return b.String()
}
