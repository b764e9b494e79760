package blocks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/skillsenselab/cortex/logger"
)

// TextJoinConfig configures a text_join block. Separator accepts any string
// including "" for plain concatenation.
type TextJoinConfig struct {
	Separator string `json:"separator"`
}

// separatorEscapes translates the literal escape sequences the frontend
// stores (so the input box stays readable) into real control characters.
var separatorEscapes = map[string]string{
	`\n`: "\n",
	`\t`: "\t",
	`\r`: "\r",
}

// TextJoin concatenates the text inputs on handles "a" and "b", plus any
// extra handles in lexicographic order, with a configurable separator.
// Non-string inputs are coerced; nil becomes the empty string.
type TextJoin struct {
	nodeID string
	config map[string]any
	log    *logger.Logger
}

// NewTextJoin constructs a text_join block.
func NewTextJoin(nodeID string, config map[string]any) Block {
	return &TextJoin{nodeID: nodeID, config: config, log: logger.WithComponent("blocks")}
}

func (b *TextJoin) NodeID() string { return b.nodeID }

// Run joins the inputs with the configured separator.
func (b *TextJoin) Run(_ context.Context, inputs map[string]any) Result {
	cfg := TextJoinConfig{Separator: " "}
	if err := decodeConfig(b.config, &cfg); err != nil {
		return fail(err.Error())
	}
	separator := resolveSeparator(cfg.Separator)

	for _, required := range []string{"a", "b"} {
		if _, present := inputs[required]; !present {
			return fail(fmt.Sprintf("Required input '%s' is missing from inputs.", required))
		}
	}

	// Join order: "a", "b", then extra handles sorted.
	ordered := []string{"a", "b"}
	var extras []string
	for handle := range inputs {
		if handle != "a" && handle != "b" {
			extras = append(extras, handle)
		}
	}
	sort.Strings(extras)
	ordered = append(ordered, extras...)

	parts := make([]string, 0, len(ordered))
	for _, handle := range ordered {
		parts = append(parts, coerceText(inputs[handle]))
	}

	joined := strings.Join(parts, separator)

	b.log.Debug("text join completed", map[string]interface{}{
		"node_id":     b.nodeID,
		"input_count": len(parts),
		"separator":   cfg.Separator, // raw config value, not the resolved one
	})

	return ok(joined, map[string]any{
		"input_count":   len(parts),
		"separator":     cfg.Separator,
		"output_length": len(joined),
	})
}

// resolveSeparator translates literal escape sequences to control characters.
func resolveSeparator(raw string) string {
	if resolved, isEscape := separatorEscapes[raw]; isEscape {
		return resolved
	}
	return raw
}

// coerceText converts an input value to a string. nil maps to "".
func coerceText(value any) string {
	if value == nil {
		return ""
	}
	if s, isStr := value.(string); isStr {
		return s
	}
	return fmt.Sprintf("%v", value)
}
