package blocks

import (
	"context"
	"strings"
	"testing"
)

func runJoin(t *testing.T, config map[string]any, inputs map[string]any) Result {
	t.Helper()
	return NewTextJoin("join-1", config).Run(context.Background(), inputs)
}

func TestTextJoin_Separators(t *testing.T) {
	tests := []struct {
		name      string
		separator any
		want      string
	}{
		{"default space", nil, "hello world"},
		{"comma", ", ", "hello, world"},
		{"empty", "", "helloworld"},
		{"newline escape", `\n`, "hello\nworld"},
		{"tab escape", `\t`, "hello\tworld"},
		{"literal dash", "-", "hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := map[string]any{}
			if tt.separator != nil {
				config["separator"] = tt.separator
			}
			res := runJoin(t, config, map[string]any{"a": "hello", "b": "world"})
			if !res.Success {
				t.Fatalf("unexpected failure: %s", res.Error)
			}
			if res.Value != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, res.Value)
			}
		})
	}
}

func TestTextJoin_ExtraHandlesSorted(t *testing.T) {
	res := runJoin(t, map[string]any{"separator": "|"}, map[string]any{
		"d": "4",
		"a": "1",
		"c": "3",
		"b": "2",
	})
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Value != "1|2|3|4" {
		t.Fatalf("expected 1|2|3|4, got %q", res.Value)
	}
	if res.Metadata["input_count"] != 4 {
		t.Errorf("expected input_count 4, got %v", res.Metadata["input_count"])
	}
}

func TestTextJoin_MissingRequiredHandle(t *testing.T) {
	res := runJoin(t, map[string]any{}, map[string]any{"a": "only"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "'b'") {
		t.Errorf("error must name the missing handle, got %q", res.Error)
	}
}

func TestTextJoin_Coercion(t *testing.T) {
	res := runJoin(t, map[string]any{"separator": " "}, map[string]any{"a": 42, "b": nil})
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	// nil from a failed upstream coerces to "".
	if res.Value != "42 " {
		t.Fatalf("expected %q, got %q", "42 ", res.Value)
	}
}

func TestTextJoin_Metadata(t *testing.T) {
	res := runJoin(t, map[string]any{"separator": `\n`}, map[string]any{"a": "x", "b": "y"})
	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Metadata["separator"] != `\n` {
		t.Errorf("metadata must keep the raw separator, got %v", res.Metadata["separator"])
	}
	if res.Metadata["output_length"] != 3 {
		t.Errorf("expected output_length 3, got %v", res.Metadata["output_length"])
	}
}
