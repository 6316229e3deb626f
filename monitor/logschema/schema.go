// Package logschema centralizes the required-field checks for the
// engine's log events, so a change to the logging package's field names
// is caught at the schema instead of silently producing incomplete log
// lines.
package logschema

import (
	"fmt"
	"sort"
	"strings"
)

// Schema names one log event and the fields every line for it must carry.
type Schema struct {
	Event    string
	Required []string
}

var schemas = map[string]Schema{
	"fill": {
		Event:    "fill",
		Required: []string{"symbol", "long", "kind", "ts", "price", "qty", "fee", "realized_pnl"},
	},
	"order_skip": {
		Event:    "order_skip",
		Required: []string{"symbol", "long", "reason", "ts"},
	},
	"bankruptcy": {
		Event:    "bankruptcy",
		Required: []string{"ts", "equity", "balance"},
	},
	"minute_observation": {
		Event:    "minute_observation",
		Required: []string{"ts", "balance", "equity"},
	},
}

// Known returns all registered event names, sorted, for documentation.
func Known() []string {
	names := make([]string, 0, len(schemas))
	for k := range schemas {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Validate checks that fields carries every key the named event
// requires. Unrecognized event names pass through unchecked.
func Validate(event string, fields map[string]interface{}) error {
	s, ok := schemas[event]
	if !ok {
		return nil
	}
	var missing []string
	for _, key := range s.Required {
		if _, exists := fields[key]; !exists {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ","))
	}
	return nil
}
