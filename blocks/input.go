package blocks

import (
	"context"
	"fmt"

	"github.com/skillsenselab/cortex/logger"
)

// Type tags for the built-in block set.
const (
	TypeTextInput     = "text_input"
	TypeNumberInput   = "number_input"
	TypeTextOutput    = "text_output"
	TypeNumberOutput  = "number_output"
	TypeMathOperation = "math_operation"
	TypeTextJoin      = "text_join"
)

// TextInputConfig configures a text_input block.
type TextInputConfig struct {
	Value     any  `json:"value"`
	MaxLength *int `json:"max_length" validate:"omitempty,gte=1"`
	Multiline bool `json:"multiline"`
}

// TextInput returns a configured text value. It takes no inputs.
type TextInput struct {
	nodeID string
	config map[string]any
	log    *logger.Logger
}

// NewTextInput constructs a text_input block.
func NewTextInput(nodeID string, config map[string]any) Block {
	return &TextInput{nodeID: nodeID, config: config, log: logger.WithComponent("blocks")}
}

func (b *TextInput) NodeID() string { return b.nodeID }

// Run returns the configured text value, enforcing the max_length constraint.
func (b *TextInput) Run(_ context.Context, _ map[string]any) Result {
	cfg := TextInputConfig{Value: ""}
	if err := decodeConfig(b.config, &cfg); err != nil {
		return fail(err.Error())
	}

	text, isString := cfg.Value.(string)
	if !isString {
		return fail(fmt.Sprintf("Text value must be a string, got %T", cfg.Value))
	}

	if cfg.MaxLength != nil && len(text) > *cfg.MaxLength {
		return fail(fmt.Sprintf("Text length %d exceeds maximum %d", len(text), *cfg.MaxLength))
	}

	b.log.Debug("text input resolved", map[string]interface{}{
		"node_id": b.nodeID,
		"length":  len(text),
	})

	return ok(text, map[string]any{
		"length":    len(text),
		"multiline": cfg.Multiline,
	})
}

// NumberInputConfig configures a number_input block.
type NumberInputConfig struct {
	Value      any      `json:"value"`
	NumberType string   `json:"number_type" validate:"oneof=int float auto"`
	MinValue   *float64 `json:"min_value"`
	MaxValue   *float64 `json:"max_value"`
}

// NumberInput returns a configured numeric value. It takes no inputs.
type NumberInput struct {
	nodeID string
	config map[string]any
	log    *logger.Logger
}

// NewNumberInput constructs a number_input block.
func NewNumberInput(nodeID string, config map[string]any) Block {
	return &NumberInput{nodeID: nodeID, config: config, log: logger.WithComponent("blocks")}
}

func (b *NumberInput) NodeID() string { return b.nodeID }

// Run coerces the configured value per number_type and enforces bounds.
func (b *NumberInput) Run(_ context.Context, _ map[string]any) Result {
	cfg := NumberInputConfig{Value: 0, NumberType: "auto"}
	if err := decodeConfig(b.config, &cfg); err != nil {
		return fail(err.Error())
	}

	value, res := coerceNumber(cfg.Value, cfg.NumberType)
	if res != nil {
		return *res
	}

	numeric, _, _ := asNumber(value)
	if cfg.MinValue != nil && numeric < *cfg.MinValue {
		return fail(fmt.Sprintf("Value %v is less than minimum %v", value, *cfg.MinValue))
	}
	if cfg.MaxValue != nil && numeric > *cfg.MaxValue {
		return fail(fmt.Sprintf("Value %v exceeds maximum %v", value, *cfg.MaxValue))
	}

	b.log.Debug("number input resolved", map[string]interface{}{
		"node_id": b.nodeID,
		"value":   value,
	})

	return ok(value, map[string]any{
		"type":           fmt.Sprintf("%T", value),
		"original_value": cfg.Value,
	})
}

// coerceNumber converts a raw configured value according to number_type.
// It returns either the coerced value or a failed Result.
func coerceNumber(raw any, numberType string) (any, *Result) {
	switch numberType {
	case "int":
		if f, _, okNum := asNumber(raw); okNum {
			return int64(f), nil
		}
		if s, isStr := raw.(string); isStr {
			if v, okParse := parseNumberString(s); okParse {
				if i, isInt := v.(int64); isInt {
					return i, nil
				}
				return int64(v.(float64)), nil
			}
		}
		r := fail(fmt.Sprintf("Cannot convert '%v' to integer", raw))
		return nil, &r
	case "float":
		if f, _, okNum := asNumber(raw); okNum {
			return f, nil
		}
		if s, isStr := raw.(string); isStr {
			if v, okParse := parseNumberString(s); okParse {
				if i, isInt := v.(int64); isInt {
					return float64(i), nil
				}
				return v, nil
			}
		}
		r := fail(fmt.Sprintf("Cannot convert '%v' to float", raw))
		return nil, &r
	default: // auto
		if _, _, okNum := asNumber(raw); okNum {
			return raw, nil
		}
		if s, isStr := raw.(string); isStr {
			if v, okParse := parseNumberString(s); okParse {
				return v, nil
			}
		}
		r := fail(fmt.Sprintf("Cannot convert '%v' to number", raw))
		return nil, &r
	}
}
