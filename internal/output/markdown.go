package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultMarkdownWidth = 80
	minMarkdownWidth     = 20
)

// IsTerminal reports whether both stdin and stdout are attached to a terminal
func IsTerminal() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !term.IsTerminal(int(f.Fd())) {
			return false
		}
	}
	return true
}

// TerminalWidth returns the width of stdout, or fallback when it is not a terminal
func TerminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if fallback <= 0 {
		return defaultMarkdownWidth
	}
	return fallback
}

// RenderMarkdown renders markdown for stdout, falling back to plain text
// when stdout is piped.
func RenderMarkdown(text string) (string, error) {
	style := ""
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		style = "notty"
	}
	return RenderMarkdownWithWidth(text, TerminalWidth(defaultMarkdownWidth), style)
}

// RenderMarkdownWithWidth renders markdown wrapped at width. An empty style
// picks dark or light from the terminal background; "notty" gives plain text.
func RenderMarkdownWithWidth(text string, width int, style string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	width = max(width, minMarkdownWidth)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}

	out, err := renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
