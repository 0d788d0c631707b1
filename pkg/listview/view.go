package listview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/sortable/internal/output"
	"github.com/marcus/sortable/pkg/reorder"
)

const listTitle = "Reorderable list"

// View renders the header, the row canvas and the footer
func (m Model) View() string {
	if m.Width <= 0 || m.Height <= 0 {
		return "Loading..."
	}

	var body string
	if m.HelpOpen {
		body = m.renderHelp()
	} else {
		body = strings.Join(m.renderCanvas(), "\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	checked := 0
	for _, it := range m.Items.Items() {
		if it.Checked {
			checked++
		}
	}
	title := titleStyle.Render(listTitle)
	count := subtleStyle.Render(fmt.Sprintf("%d/%d done", checked, m.Items.Len()))
	gap := m.Width - lipgloss.Width(title) - lipgloss.Width(count) - 2
	if gap < 1 {
		gap = 1
	}
	line := " " + title + strings.Repeat(" ", gap) + count
	rule := ruleStyle.Render(strings.Repeat("─", m.Width))
	return ansi.Truncate(line, m.Width, "") + "\n" + rule
}

// renderCanvas paints rows at their animated offsets. Rows are painted in
// the engine's paint order so a raised row covers whatever it overlaps.
func (m Model) renderCanvas() []string {
	height := m.listHeight()
	lines := make([]string, height)
	blank := strings.Repeat(" ", m.Width)
	for i := range lines {
		lines[i] = blank
	}

	if m.Items.Len() == 0 {
		if height > 0 {
			lines[0] = subtleStyle.Render(ansi.Truncate("  No items. Press n to add one.", m.Width, ""))
		}
		return lines
	}

	scroll := m.List.Scroll().Offset()
	for _, r := range m.List.Rows() {
		top := int(math.Round(r.Offset() - scroll))
		for i, l := range m.renderRow(r) {
			y := top + i
			if y >= 0 && y < height {
				lines[y] = l
			}
		}
	}
	return lines
}

// renderRow returns the lines of one row: the item line followed by
// padding and a separator up to the configured row height.
func (m Model) renderRow(r *reorder.Row) []string {
	it, ok := m.Items.Get(r.ID())
	if !ok {
		return nil
	}
	width := m.Width
	raised := r.Raised()

	titleWidth := width - titleCol - removeMargin - 1
	if titleWidth < 1 {
		titleWidth = 1
	}
	title := ansi.Truncate(it.Title, titleWidth, "…")
	if it.Checked && !raised {
		title = checkedStyle.Render(title)
	}

	handle := "≡"
	remove := "×"
	if !raised {
		handle = handleStyle.Render(handle)
		remove = removeStyle.Render(remove)
	}

	left := " " + handle + " " + output.Checkbox(it.Checked) + " " + title
	pad := width - lipgloss.Width(left) - removeMargin + 1
	if pad < 1 {
		pad = 1
	}
	line := left + strings.Repeat(" ", pad) + remove + " "
	line = ansi.Truncate(line, width, "")

	style := lipgloss.NewStyle().Width(width)
	switch {
	case raised:
		style = raisedRowStyle.Width(width)
	case it.ID == m.Cursor:
		style = selectedRowStyle.Width(width)
	}

	out := make([]string, 0, m.Config.RowHeight)
	out = append(out, style.Render(line))
	for i := 1; i < m.Config.RowHeight; i++ {
		if i == m.Config.RowHeight-1 && !raised {
			out = append(out, ruleStyle.Render(strings.Repeat("┈", width)))
			continue
		}
		out = append(out, style.Render(""))
	}
	return out
}

func (m Model) renderFooter() string {
	var line string
	switch {
	case m.PromptOpen:
		line = promptLabelStyle.Render(" New item: ") + m.Prompt.View()
	case m.StatusMessage != "":
		style := statusStyle
		if m.StatusIsError {
			style = statusErrorStyle
		}
		line = " " + style.Render(m.StatusMessage)
	case m.Keymap.PendingKey() != "":
		line = helpStyle.Render(" " + m.Keymap.PendingKey() + " …")
	default:
		line = helpStyle.Render(" " + m.Keymap.FooterHelp())
	}
	return ansi.Truncate(line, m.Width, "…")
}

// Help overlay

func (m Model) helpContentWidth() int {
	w := m.Width - 4
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) helpVisibleHeight() int {
	h := m.listHeight() - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) helpMaxScroll() int {
	total := len(strings.Split(m.HelpContent, "\n"))
	maxScroll := total - m.helpVisibleHeight()
	if maxScroll < 0 {
		return 0
	}
	return maxScroll
}

func (m Model) renderHelp() string {
	content := m.HelpContent
	if content == "" {
		content = "Loading help..."
	}
	lines := strings.Split(content, "\n")
	start := m.HelpScroll
	if start > len(lines) {
		start = len(lines)
	}
	end := start + m.helpVisibleHeight()
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[start:end]
	for i, l := range visible {
		visible[i] = ansi.Truncate(l, m.helpContentWidth(), "")
	}

	box := helpBoxStyle.Render(strings.Join(visible, "\n"))
	return lipgloss.Place(m.Width, m.listHeight(), lipgloss.Center, lipgloss.Top, box)
}
