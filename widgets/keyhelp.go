package widgets

import (
	"fmt"
	"strings"
)

// KeyBinding is a single key and its description.
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderKeyHelp formats key bindings in a friendly way.
func RenderKeyHelp(keys []KeyBinding) string {
	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
	}
	return strings.Join(lines, "\n")
}
