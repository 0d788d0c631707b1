package keymap

// DefaultBindings returns the default key bindings for the list view
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "q", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},

		// List: cursor
		{Key: "j", Command: CmdCursorDown, Context: ContextList, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextList, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextList, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextList, Description: "Move up"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextList, Description: "Go to top"},
		{Key: "home", Command: CmdCursorTop, Context: ContextList, Description: "Go to top"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextList, Description: "Go to bottom"},
		{Key: "end", Command: CmdCursorBottom, Context: ContextList, Description: "Go to bottom"},
		{Key: "ctrl+d", Command: CmdHalfPageDown, Context: ContextList, Description: "Half page down"},
		{Key: "ctrl+u", Command: CmdHalfPageUp, Context: ContextList, Description: "Half page up"},
		{Key: "pgdown", Command: CmdHalfPageDown, Context: ContextList, Description: "Page down"},
		{Key: "pgup", Command: CmdHalfPageUp, Context: ContextList, Description: "Page up"},

		// List: items
		{Key: "space", Command: CmdToggleChecked, Context: ContextList, Description: "Check / uncheck"},
		{Key: "enter", Command: CmdToggleChecked, Context: ContextList, Description: "Check / uncheck"},
		{Key: "x", Command: CmdRemove, Context: ContextList, Description: "Remove item"},
		{Key: "delete", Command: CmdRemove, Context: ContextList, Description: "Remove item"},
		{Key: "n", Command: CmdNewItem, Context: ContextList, Description: "New item"},
		{Key: "K", Command: CmdMoveUp, Context: ContextList, Description: "Move item up"},
		{Key: "shift+up", Command: CmdMoveUp, Context: ContextList, Description: "Move item up"},
		{Key: "J", Command: CmdMoveDown, Context: ContextList, Description: "Move item down"},
		{Key: "shift+down", Command: CmdMoveDown, Context: ContextList, Description: "Move item down"},
		{Key: "r", Command: CmdReload, Context: ContextList, Description: "Reload items file"},

		// Prompt
		{Key: "enter", Command: CmdSubmit, Context: ContextPrompt, Description: "Add item"},
		{Key: "esc", Command: CmdCancel, Context: ContextPrompt, Description: "Cancel"},
		{Key: "ctrl+c", Command: CmdCancel, Context: ContextPrompt, Description: "Cancel"},

		// Help overlay
		{Key: "esc", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "j", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
	}
}

// RegisterDefaults registers all default bindings
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
