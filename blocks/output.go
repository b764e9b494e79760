package blocks

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/skillsenselab/cortex/logger"
)

// TextOutputConfig configures a text_output block.
type TextOutputConfig struct {
	Format           string `json:"format" validate:"oneof=plain json pretty"`
	MaxDisplayLength *int   `json:"max_display_length" validate:"omitempty,gte=1"`
}

// TextOutput formats its first input as display text.
type TextOutput struct {
	nodeID string
	config map[string]any
	log    *logger.Logger
}

// NewTextOutput constructs a text_output block.
func NewTextOutput(nodeID string, config map[string]any) Block {
	return &TextOutput{nodeID: nodeID, config: config, log: logger.WithComponent("blocks")}
}

func (b *TextOutput) NodeID() string { return b.nodeID }

// Run renders the first input per the configured format. With no inputs it
// succeeds with an empty string.
func (b *TextOutput) Run(_ context.Context, inputs map[string]any) Result {
	cfg := TextOutputConfig{Format: "plain"}
	if err := decodeConfig(b.config, &cfg); err != nil {
		return fail(err.Error())
	}

	if len(inputs) == 0 {
		b.log.Warn("text output received no inputs", map[string]interface{}{
			"node_id": b.nodeID,
		})
		return ok("", map[string]any{"input_count": 0})
	}

	value := firstInput(inputs)

	var formatted string
	switch cfg.Format {
	case "json":
		formatted = formatJSON(value)
	case "pretty":
		formatted = fmt.Sprintf("[%T] %v", value, value)
	default:
		formatted = fmt.Sprintf("%v", value)
	}

	truncated := false
	if cfg.MaxDisplayLength != nil && len(formatted) > *cfg.MaxDisplayLength {
		formatted = formatted[:*cfg.MaxDisplayLength] + "..."
		truncated = true
	}

	return ok(formatted, map[string]any{
		"format":     cfg.Format,
		"length":     len(formatted),
		"truncated":  truncated,
		"input_type": fmt.Sprintf("%T", value),
	})
}

// NumberOutputConfig configures a number_output block.
type NumberOutputConfig struct {
	DecimalPlaces         *int    `json:"decimal_places" validate:"omitempty,gte=0,lte=10"`
	UseThousandsSeparator bool    `json:"use_thousands_separator"`
	ScientificNotation    bool    `json:"scientific_notation"`
	ScientificThreshold   float64 `json:"scientific_threshold" validate:"gt=0"`
}

// NumberOutput validates a numeric input and formats it for display.
type NumberOutput struct {
	nodeID string
	config map[string]any
	log    *logger.Logger
}

// NewNumberOutput constructs a number_output block.
func NewNumberOutput(nodeID string, config map[string]any) Block {
	return &NumberOutput{nodeID: nodeID, config: config, log: logger.WithComponent("blocks")}
}

func (b *NumberOutput) NodeID() string { return b.nodeID }

// Run formats the first numeric input. NaN and infinities are rendered as
// their display symbols rather than rejected.
func (b *NumberOutput) Run(_ context.Context, inputs map[string]any) Result {
	cfg := NumberOutputConfig{ScientificThreshold: 1e6}
	if err := decodeConfig(b.config, &cfg); err != nil {
		return fail(err.Error())
	}

	if len(inputs) == 0 {
		return fail("No input provided to number output block")
	}

	value := firstInput(inputs)

	numeric, isInt, okNum := asNumber(value)
	if !okNum {
		s, isStr := value.(string)
		if !isStr {
			return fail(fmt.Sprintf("Expected numeric input, got %T", value))
		}
		parsed, okParse := parseNumberString(s)
		if !okParse {
			return fail(fmt.Sprintf("Cannot convert '%v' to number", value))
		}
		value = parsed
		numeric, isInt, _ = asNumber(parsed)
	}

	formatted, specialType := formatSpecial(numeric, isInt)
	isSpecial := specialType != ""

	if !isSpecial {
		formatted = formatNumber(numeric, isInt, cfg)
	}

	b.log.Debug("number output formatted", map[string]interface{}{
		"node_id": b.nodeID,
		"value":   formatted,
	})

	metadata := map[string]any{
		"original_value": value,
		"type":           fmt.Sprintf("%T", value),
		"is_special":     isSpecial,
	}
	if isSpecial {
		metadata["special_type"] = specialType
	}
	return ok(formatted, metadata)
}

// firstInput picks the deterministic first input: the value bound to the
// lexicographically smallest handle. Output blocks conventionally have one.
func firstInput(inputs map[string]any) any {
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return inputs[keys[0]]
}

// formatSpecial renders NaN and infinities; specialType is empty otherwise.
func formatSpecial(f float64, isInt bool) (formatted, specialType string) {
	if isInt {
		return "", ""
	}
	switch {
	case math.IsNaN(f):
		return "NaN", "NaN"
	case math.IsInf(f, 1):
		return "∞", "Infinity"
	case math.IsInf(f, -1):
		return "-∞", "-Infinity"
	}
	return "", ""
}

// formatNumber applies scientific/decimal/thousands formatting rules.
func formatNumber(f float64, isInt bool, cfg NumberOutputConfig) string {
	useScientific := cfg.ScientificNotation || (math.Abs(f) >= cfg.ScientificThreshold && !isInt)
	if useScientific {
		places := 2
		if cfg.DecimalPlaces != nil {
			places = *cfg.DecimalPlaces
		}
		return strconv.FormatFloat(f, 'e', places, 64)
	}

	var formatted string
	switch {
	case isInt:
		formatted = strconv.FormatInt(int64(f), 10)
	case cfg.DecimalPlaces != nil:
		formatted = strconv.FormatFloat(f, 'f', *cfg.DecimalPlaces, 64)
	default:
		formatted = strconv.FormatFloat(f, 'f', -1, 64)
	}

	if cfg.UseThousandsSeparator {
		formatted = addThousandsSeparators(formatted)
	}
	return formatted
}

// formatJSON renders a value as indented JSON, wrapping scalars in an object.
func formatJSON(value any) string {
	toEncode := value
	switch value.(type) {
	case map[string]any, []any:
		// encode as-is
	default:
		toEncode = map[string]any{"value": value}
	}
	data, err := json.MarshalIndent(toEncode, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
