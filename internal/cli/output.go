package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// wordWrap is the width markdown output is wrapped at.
const wordWrap = 80

// Markdowner is data whose human-readable form is a markdown document.
type Markdowner interface {
	Markdown() string
}

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	// Plain prints markdown as is instead of rendering it for the terminal
	Plain bool

	Out    io.Writer // defaults to stdout
	ErrOut io.Writer // defaults to stderr
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.ErrOut == nil {
		return os.Stderr
	}
	return f.ErrOut
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() string }); ok {
			_, err := fmt.Fprintln(f.out(), idGetter.GetID())
			return err
		}
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.errOut(), "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "Suggestion: %s\n", suggestion)
	}
	return nil
}

// prettyPrint renders markdown data with glamour and prints anything else
// with %+v.
func (f *OutputFormatter) prettyPrint(data any) error {
	md, ok := data.(Markdowner)
	if !ok {
		_, err := fmt.Fprintf(f.out(), "%+v\n", data)
		return err
	}

	text := md.Markdown()
	if !f.Plain {
		rendered, err := renderMarkdown(text)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		text = rendered
	}
	_, err := io.WriteString(f.out(), text)
	return err
}

func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
