package keymap

import (
	"fmt"
	"sort"
	"strings"
)

var contextTitles = []struct {
	ctx   Context
	title string
}{
	{ContextList, "List"},
	{ContextPrompt, "New item"},
	{ContextHelp, "Help"},
	{ContextGlobal, "Everywhere"},
}

// AllCommands returns every command, sorted
func AllCommands() []Command {
	cmds := []Command{
		CmdQuit, CmdToggleHelp,
		CmdCursorDown, CmdCursorUp, CmdCursorTop, CmdCursorBottom,
		CmdHalfPageDown, CmdHalfPageUp, CmdScrollDown, CmdScrollUp,
		CmdToggleChecked, CmdRemove, CmdNewItem, CmdMoveUp, CmdMoveDown, CmdReload,
		CmdSubmit, CmdCancel, CmdClose,
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i] < cmds[j] })
	return cmds
}

// IsCommand reports whether cmd is a known command
func IsCommand(cmd Command) bool {
	for _, c := range AllCommands() {
		if c == cmd {
			return true
		}
	}
	return false
}

// BindingsByCommand returns keys per command for one context, in
// registration order, with user overrides applied.
func (r *Registry) BindingsByCommand(context Context) (map[Command][]string, []Command) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make(map[Command][]string)
	var order []Command
	add := func(cmd Command, key string) {
		if _, ok := keys[cmd]; !ok {
			order = append(order, cmd)
		}
		keys[cmd] = append(keys[cmd], key)
	}
	over := r.overrides[context]
	for _, b := range r.bindings[context] {
		if cmd, ok := over[b.Key]; ok && cmd != b.Command {
			continue
		}
		add(b.Command, b.Key)
	}

	extra := make([]string, 0, len(over))
	for k := range over {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		if cmd := over[k]; !contains(keys[cmd], k) {
			add(cmd, k)
		}
	}
	return keys, order
}

func (r *Registry) description(context Context, cmd Command) string {
	for _, b := range r.bindings[context] {
		if b.Command == cmd && b.Description != "" {
			return b.Description
		}
	}
	for _, ctx := range contextTitles {
		for _, b := range r.bindings[ctx.ctx] {
			if b.Command == cmd && b.Description != "" {
				return b.Description
			}
		}
	}
	return string(cmd)
}

// GenerateHelp renders the bindings as markdown, one section per context.
// Gestures come first since they have no keys.
func (r *Registry) GenerateHelp() string {
	var sb strings.Builder
	sb.WriteString("# Reorderable list\n\n")
	sb.WriteString("## Mouse\n\n")
	sb.WriteString("| Gesture | Action |\n|---|---|\n")
	sb.WriteString("| Press and hold a row, then drag | Move the row |\n")
	sb.WriteString("| Drag near the top or bottom edge | Scroll while moving |\n")
	sb.WriteString("| Click `[ ]` | Check / uncheck |\n")
	sb.WriteString("| Click `×` | Remove item |\n")
	sb.WriteString("| Wheel, or drag without holding | Scroll |\n")

	for _, ct := range contextTitles {
		keys, order := r.BindingsByCommand(ct.ctx)
		if len(order) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", ct.title))
		sb.WriteString("| Keys | Action |\n|---|---|\n")
		for _, cmd := range order {
			formatted := make([]string, len(keys[cmd]))
			for i, k := range keys[cmd] {
				formatted[i] = "`" + formatKey(k) + "`"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", strings.Join(formatted, " "), r.description(ct.ctx, cmd)))
		}
	}
	return sb.String()
}

// FooterHelp returns the short hint line for the list footer
func (r *Registry) FooterHelp() string {
	return "hold+drag move · space check · x remove · n new · ? help · q quit"
}

func formatKey(key string) string {
	switch key {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "shift+up":
		return "Shift+↑"
	case "shift+down":
		return "Shift+↓"
	case "ctrl+c", "ctrl+d", "ctrl+u":
		return "Ctrl+" + key[len(key)-1:]
	case "esc":
		return "Esc"
	case "enter":
		return "Enter"
	case "space":
		return "Space"
	}
	return key
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
