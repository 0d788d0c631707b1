package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal Context = "global"
	ContextList   Context = "list"   // Main list, no overlay open
	ContextPrompt Context = "prompt" // New item prompt has focus (text input)
	ContextHelp   Context = "help"   // Help overlay is open
)

// Command represents a named command that can be triggered by key bindings
type Command string

// All available commands
const (
	// Global commands
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	// Navigation commands
	CmdCursorDown   Command = "cursor-down"
	CmdCursorUp     Command = "cursor-up"
	CmdCursorTop    Command = "cursor-top"
	CmdCursorBottom Command = "cursor-bottom"
	CmdHalfPageDown Command = "half-page-down"
	CmdHalfPageUp   Command = "half-page-up"
	CmdScrollDown   Command = "scroll-down"
	CmdScrollUp     Command = "scroll-up"

	// Item commands
	CmdToggleChecked Command = "toggle-checked"
	CmdRemove        Command = "remove"
	CmdNewItem       Command = "new-item"
	CmdMoveUp        Command = "move-up"
	CmdMoveDown      Command = "move-down"
	CmdReload        Command = "reload"

	// Prompt and overlay commands
	CmdSubmit Command = "submit"
	CmdCancel Command = "cancel"
	CmdClose  Command = "close"
)

// Binding maps a key or key sequence to a command in a specific context
type Binding struct {
	Key         string  // e.g., "space", "ctrl+d", "g g"
	Command     Command // Command ID
	Context     Context // "global", "list", "prompt", "help"
	Description string  // Human-readable description for help text
}

// Registry resolves keys to commands. Bindings keep registration order
// per context so help lists them the way they were declared.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[Context][]Binding
	overrides map[Context]map[string]Command
	seq       sequence
	now       func() time.Time
}

// sequence is the first half of a two-key binding such as "g g"
type sequence struct {
	key string
	at  time.Time
}

func (s sequence) live(now time.Time) bool {
	return s.key != "" && now.Sub(s.at) < sequenceTimeout
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[Context][]Binding),
		overrides: make(map[Context]map[string]Command),
		now:       time.Now,
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
	r.mu.Unlock()
}

// RegisterBindings adds bindings in order
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetUserOverride binds key to cmd in context, shadowing the defaults
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.overrides[context]
	if !ok {
		m = make(map[string]Command)
		r.overrides[context] = m
	}
	m[key] = cmd
}

// Lookup resolves key in the active context. Overrides win over defaults
// and the active context wins over global, except in the prompt where
// unbound keys belong to the text input. A key that starts a sequence
// returns false and is remembered for the next call.
func (r *Registry) Lookup(key tea.KeyMsg, active Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := KeyToString(key)
	now := r.now()

	if prev := r.seq; prev.key != "" {
		r.seq = sequence{}
		if prev.live(now) {
			if cmd, ok := r.resolve(prev.key+" "+name, active); ok {
				return cmd, true
			}
		}
	}

	if r.startsSequence(name, active) {
		r.seq = sequence{key: name, at: now}
		return "", false
	}
	return r.resolve(name, active)
}

// searchOrder lists the contexts consulted for active, most specific first
func searchOrder(active Context) []Context {
	switch active {
	case "", ContextGlobal:
		return []Context{ContextGlobal}
	case ContextPrompt:
		return []Context{ContextPrompt}
	default:
		return []Context{active, ContextGlobal}
	}
}

func (r *Registry) resolve(key string, active Context) (Command, bool) {
	order := searchOrder(active)
	for _, ctx := range order {
		if cmd, ok := r.overrides[ctx][key]; ok {
			return cmd, true
		}
	}
	// Global overrides apply even inside the prompt
	if active == ContextPrompt {
		if cmd, ok := r.overrides[ContextGlobal][key]; ok {
			return cmd, true
		}
	}
	for _, ctx := range order {
		for _, b := range r.bindings[ctx] {
			if b.Key == key {
				return b.Command, true
			}
		}
	}
	return "", false
}

func (r *Registry) startsSequence(key string, active Context) bool {
	if active == ContextPrompt {
		return false
	}
	prefix := key + " "
	for _, ctx := range searchOrder(active) {
		for _, b := range r.bindings[ctx] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
	}
	for _, m := range r.overrides {
		for k := range m {
			if strings.HasPrefix(k, prefix) {
				return true
			}
		}
	}
	return false
}

// ResetPending drops a half-typed sequence
func (r *Registry) ResetPending() {
	r.mu.Lock()
	r.seq = sequence{}
	r.mu.Unlock()
}

// PendingKey returns the first key of a sequence still waiting for its second
func (r *Registry) PendingKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.seq.live(r.now()) {
		return r.seq.key
	}
	return ""
}

// BindingsForContext returns the bindings of context followed by the global ones
func (r *Registry) BindingsForContext(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := append([]Binding(nil), r.bindings[context]...)
	if context != ContextGlobal {
		result = append(result, r.bindings[ContextGlobal]...)
	}
	return result
}

var keyNames = map[tea.KeyType]string{
	tea.KeyCtrlC:     "ctrl+c",
	tea.KeyCtrlD:     "ctrl+d",
	tea.KeyCtrlU:     "ctrl+u",
	tea.KeyCtrlF:     "ctrl+f",
	tea.KeyCtrlB:     "ctrl+b",
	tea.KeyCtrlR:     "ctrl+r",
	tea.KeyTab:       "tab",
	tea.KeyShiftTab:  "shift+tab",
	tea.KeyEnter:     "enter",
	tea.KeyEsc:       "esc",
	tea.KeySpace:     "space",
	tea.KeyBackspace: "backspace",
	tea.KeyDelete:    "delete",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pgup",
	tea.KeyPgDown:    "pgdown",
	tea.KeyShiftUp:   "shift+up",
	tea.KeyShiftDown: "shift+down",
}

// KeyToString names a key the way bindings spell it
func KeyToString(key tea.KeyMsg) string {
	if name, ok := keyNames[key.Type]; ok {
		return name
	}
	if key.Type == tea.KeyRunes {
		if len(key.Runes) == 1 && key.Runes[0] == ' ' {
			return "space"
		}
		return string(key.Runes)
	}
	return key.String()
}
