package blocks

import (
	"context"
	"strings"
	"testing"
)

func TestTextInput_ReturnsConfiguredValue(t *testing.T) {
	res := NewTextInput("t-1", map[string]any{"value": "hello"}).Run(context.Background(), nil)
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Value != "hello" {
		t.Fatalf("expected hello, got %v", res.Value)
	}
	if res.Metadata["length"] != 5 {
		t.Errorf("expected length 5, got %v", res.Metadata["length"])
	}
}

func TestTextInput_DefaultsToEmpty(t *testing.T) {
	res := NewTextInput("t-1", map[string]any{}).Run(context.Background(), nil)
	if !res.Success || res.Value != "" {
		t.Fatalf("expected empty string default, got %v (err=%s)", res.Value, res.Error)
	}
}

func TestTextInput_RejectsNonString(t *testing.T) {
	res := NewTextInput("t-1", map[string]any{"value": 42}).Run(context.Background(), nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "must be a string") {
		t.Errorf("unexpected diagnostic: %q", res.Error)
	}
}

func TestTextInput_MaxLength(t *testing.T) {
	config := map[string]any{"value": "toolong", "max_length": 3}
	res := NewTextInput("t-1", config).Run(context.Background(), nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "exceeds maximum 3") {
		t.Errorf("unexpected diagnostic: %q", res.Error)
	}

	config["value"] = "ok"
	res = NewTextInput("t-1", config).Run(context.Background(), nil)
	if !res.Success {
		t.Fatalf("value within max_length must pass: %s", res.Error)
	}
}

func TestNumberInput_Coercion(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		numberType string
		want       any
	}{
		{"auto int", 5, "auto", 5},
		{"auto float", 2.5, "auto", 2.5},
		{"auto string int", "7", "auto", int64(7)},
		{"auto string float", "2.5", "auto", 2.5},
		{"int from float", 3.9, "int", int64(3)},
		{"int from string", "42", "int", int64(42)},
		{"float from int", 5, "float", 5.0},
		{"float from string", "1.25", "float", 1.25},
		{"scientific string", "1e3", "auto", 1000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := map[string]any{"value": tt.value, "number_type": tt.numberType}
			res := NewNumberInput("n-1", config).Run(context.Background(), nil)
			if !res.Success {
				t.Fatalf("unexpected failure: %s", res.Error)
			}
			if res.Value != tt.want {
				t.Fatalf("expected %v (%T), got %v (%T)", tt.want, tt.want, res.Value, res.Value)
			}
		})
	}
}

func TestNumberInput_RejectsUnparseable(t *testing.T) {
	for _, numberType := range []string{"auto", "int", "float"} {
		res := NewNumberInput("n-1", map[string]any{
			"value":       "not a number",
			"number_type": numberType,
		}).Run(context.Background(), nil)
		if res.Success {
			t.Fatalf("number_type=%s: expected failure", numberType)
		}
		if !strings.Contains(res.Error, "Cannot convert") {
			t.Errorf("number_type=%s: unexpected diagnostic %q", numberType, res.Error)
		}
	}
}

func TestNumberInput_Bounds(t *testing.T) {
	config := map[string]any{"value": 5, "min_value": 10.0}
	res := NewNumberInput("n-1", config).Run(context.Background(), nil)
	if res.Success || !strings.Contains(res.Error, "less than minimum") {
		t.Fatalf("expected min bound failure, got success=%v err=%q", res.Success, res.Error)
	}

	config = map[string]any{"value": 5, "max_value": 3.0}
	res = NewNumberInput("n-1", config).Run(context.Background(), nil)
	if res.Success || !strings.Contains(res.Error, "exceeds maximum") {
		t.Fatalf("expected max bound failure, got success=%v err=%q", res.Success, res.Error)
	}

	config = map[string]any{"value": 5, "min_value": 1.0, "max_value": 10.0}
	res = NewNumberInput("n-1", config).Run(context.Background(), nil)
	if !res.Success {
		t.Fatalf("in-bounds value must pass: %s", res.Error)
	}
}

func TestNumberInput_InvalidNumberType(t *testing.T) {
	res := NewNumberInput("n-1", map[string]any{
		"value":       5,
		"number_type": "decimal",
	}).Run(context.Background(), nil)
	if res.Success {
		t.Fatal("expected config validation failure")
	}
}
