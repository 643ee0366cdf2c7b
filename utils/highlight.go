package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
)

// HighlightWithContext writes content to w with chroma syntax highlighting, one line at a
// time so that a cancelled context stops long output promptly.
func HighlightWithContext(ctx context.Context, w io.Writer, content string, language string, theme string) error {
	lines := strings.SplitAfter(content, "\n")

	for i, line := range lines {
		if i%5 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		var buf bytes.Buffer
		if err := quick.Highlight(&buf, line, language, "terminal256", theme); err != nil {
			return err
		}
		if _, err := io.Copy(w, &buf); err != nil {
			return err
		}
	}

	return nil
}

// HighlightJSON highlights an exported document.
func HighlightJSON(ctx context.Context, w io.Writer, content string, theme string) error {
	return HighlightWithContext(ctx, w, content, "json", theme)
}

// RenderMarkdown renders markdown for the terminal, wrapped at wordWrap columns.
func RenderMarkdown(content string, wordWrap int) (string, error) {
	if wordWrap <= 0 {
		wordWrap = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return strings.TrimRight(out, "\n"), nil
}
