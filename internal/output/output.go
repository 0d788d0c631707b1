// Package output provides styled terminal output helpers (success, error,
// warning, item formatting) using lipgloss.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/marcus/sortable/internal/models"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeConfigError  = "config_error"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	JSONErrorWithDetails(code, message, nil)
}

// JSONErrorWithDetails outputs an error as JSON with additional context
func JSONErrorWithDetails(code, message string, details map[string]interface{}) {
	errObj := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		errObj["details"] = details
	}
	data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
	fmt.Println(string(data))
}

// Checkbox renders the checked marker used in lists
func Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// FormatItemShort formats an item as "N. [x] Title  id"
func FormatItemShort(it models.Item) string {
	title := it.Title
	if it.Checked {
		title = checkedStyle.Render(title)
	}
	return fmt.Sprintf("%s %s %s  %s",
		titleStyle.Render(fmt.Sprintf("%2d.", it.Order+1)),
		Checkbox(it.Checked),
		title,
		subtleStyle.Render(it.ID))
}

// ItemOneLinerPlain returns an unstyled one-line item for text contexts
func ItemOneLinerPlain(it models.Item) string {
	return fmt.Sprintf("%d %s %s %q", it.Order, it.ID, Checkbox(it.Checked), it.Title)
}

// FormatOrder renders items one per line in list order
func FormatOrder(list []models.Item) string {
	lines := make([]string, len(list))
	for i, it := range list {
		lines[i] = FormatItemShort(it)
	}
	return strings.Join(lines, "\n")
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nBINDINGS:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentString indents each line in a string by the specified number of spaces
func IndentString(s string, spaces int) string {
	if s == "" {
		return ""
	}
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
