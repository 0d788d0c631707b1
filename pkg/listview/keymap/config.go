// Package keymap provides user-configurable key bindings for the list view.
// Overrides live in the bindings section of .sortable/config.yaml.
package keymap

import "fmt"

// ApplyBindings applies "context:key" -> command overrides to the registry.
// Unknown commands are reported and skipped.
func ApplyBindings(r *Registry, bindings map[string]string) error {
	var bad []string
	for binding, cmdStr := range bindings {
		ctx, key := parseBinding(binding)
		if key == "" {
			bad = append(bad, binding)
			continue
		}
		if !IsCommand(Command(cmdStr)) {
			bad = append(bad, binding+"="+cmdStr)
			continue
		}
		r.SetUserOverride(ctx, key, Command(cmdStr))
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid key bindings: %v", bad)
	}
	return nil
}

// parseBinding parses a "context:key" string into context and key parts.
func parseBinding(s string) (Context, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return Context(s[:i]), s[i+1:]
		}
	}
	// If no colon, assume global context
	return ContextGlobal, s
}

// ExampleBindings returns example overrides for documentation
func ExampleBindings() map[string]string {
	return map[string]string{
		"list:d":        string(CmdRemove),
		"list:a":        string(CmdNewItem),
		"global:ctrl+q": string(CmdQuit),
	}
}
