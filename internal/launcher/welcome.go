package launcher

import "github.com/thenoetrevino/pilar/internal/document"

// WelcomeDoc is the document a new session opens with.
func WelcomeDoc() *document.Spec {
	return document.DocSpec(
		document.Heading(1, "Welcome to pilar"),
		document.Paragraph("Press ctrl+g to insert two columns below the cursor."),
		document.ColumnGroup(
			document.Column(1,
				document.Heading(2, "Drag"),
				document.Paragraph("Drag a handle to reorder columns."),
			),
			document.Column(1,
				document.Heading(2, "Resize"),
				document.Paragraph("Drag the gap between columns to resize them."),
			),
		),
		document.ColumnGroup(
			document.EmptyColumn(),
			document.Column(1, document.Paragraph("Backspace in the empty column on the left removes it.")),
		),
		document.Paragraph("alt+drag this line next to another block to build a group."),
		document.Paragraph("Press f1 for every key."),
	)
}
