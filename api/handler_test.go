package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/cortex/blocks"
	"github.com/skillsenselab/cortex/engine"
	"github.com/skillsenselab/cortex/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewDefault("cortex-test")
	executor := engine.NewExecutor(blocks.NewDefaultRegistry(), log)
	handler := NewHandler(executor, log)

	r := gin.New()
	handler.RegisterRoutes(r)
	return r
}

func postRun(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/engine/run", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type runEnvelope struct {
	Data FlowExecutionResponse `json:"data"`
}

func decodeRun(t *testing.T, w *httptest.ResponseRecorder) FlowExecutionResponse {
	t.Helper()
	var env runEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v (body: %s)", err, w.Body.String())
	}
	return env.Data
}

const adderFlow = `{
	"nodes": [
		{"id": "num1", "type": "number_input", "data": {"label": "A", "value": 5, "config": {}}},
		{"id": "num2", "type": "number_input", "data": {"label": "B", "value": 3, "config": {}}},
		{"id": "sum", "type": "math_operation", "data": {"label": "Sum", "config": {"operation": "add"}}}
	],
	"edges": [
		{"id": "e1", "source": "num1", "target": "sum", "targetHandle": "a"},
		{"id": "e2", "source": "num2", "target": "sum", "targetHandle": "b"}
	]
}`

func TestRunFlow_Adder(t *testing.T) {
	r := newTestRouter(t)
	w := postRun(t, r, adderFlow)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeRun(t, w)
	if resp.RunID == "" {
		t.Error("expected a run id")
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 node results, got %d", len(resp.Results))
	}

	sum := resp.Results["sum"]
	if !sum.Success {
		t.Fatalf("sum failed: %s", sum.Error)
	}
	// JSON round-trip renders the engine's int64 as a float64.
	if got, ok := sum.Value.(float64); !ok || got != 8 {
		t.Errorf("expected 8, got %v (%T)", sum.Value, sum.Value)
	}
	if len(resp.Order) != 3 || resp.Order[2] != "sum" {
		t.Errorf("expected sum scheduled last, got %v", resp.Order)
	}
}

func TestRunFlow_NodeFailureStaysInResults(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "a", "type": "number_input", "data": {"value": 10}},
			{"id": "b", "type": "number_input", "data": {"value": 0}},
			{"id": "div", "type": "math_operation", "data": {"config": {"operation": "divide"}}},
			{"id": "out", "type": "number_output", "data": {}}
		],
		"edges": [
			{"id": "e1", "source": "a", "target": "div", "targetHandle": "a"},
			{"id": "e2", "source": "b", "target": "div", "targetHandle": "b"},
			{"id": "e3", "source": "div", "target": "out", "targetHandle": "value"}
		]
	}`

	r := newTestRouter(t)
	w := postRun(t, r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("per-node failures must not fail the request, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeRun(t, w)
	div := resp.Results["div"]
	if div.Success || !strings.Contains(strings.ToLower(div.Error), "division by zero") {
		t.Errorf("expected division-by-zero failure, got %+v", div)
	}
	// Downstream was still attempted, with a nil input.
	if out, recorded := resp.Results["out"]; !recorded {
		t.Error("downstream node must still be recorded")
	} else if out.Success {
		t.Error("downstream of a failed node cannot succeed on a nil input")
	}
}

func TestRunFlow_CycleReturns422(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "a", "type": "number_input", "data": {"value": 1}},
			{"id": "b", "type": "number_input", "data": {"value": 2}}
		],
		"edges": [
			{"id": "e1", "source": "a", "target": "b"},
			{"id": "e2", "source": "b", "target": "a"}
		]
	}`

	r := newTestRouter(t)
	w := postRun(t, r, body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for cyclic graph, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "CYCLIC_GRAPH") {
		t.Errorf("expected CYCLIC_GRAPH code in body, got %s", w.Body.String())
	}
}

func TestRunFlow_DuplicateNodeID(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "x", "type": "number_input", "data": {"value": 1}},
			{"id": "x", "type": "number_input", "data": {"value": 2}}
		],
		"edges": []
	}`

	r := newTestRouter(t)
	w := postRun(t, r, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate node id, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "DUPLICATE_NODE") {
		t.Errorf("expected DUPLICATE_NODE code, got %s", w.Body.String())
	}
}

func TestRunFlow_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"nodes": [`},
		{"no nodes", `{"nodes": [], "edges": []}`},
		{"missing node id", `{"nodes": [{"type": "number_input", "data": {}}], "edges": []}`},
		{"missing node type", `{"nodes": [{"id": "a", "data": {}}], "edges": []}`},
		{"edge missing target", `{"nodes": [{"id": "a", "type": "number_input", "data": {}}], "edges": [{"id": "e1", "source": "a"}]}`},
	}

	r := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postRun(t, r, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRunFlow_UnknownBlockType(t *testing.T) {
	body := `{
		"nodes": [{"id": "mystery", "type": "quantum_flux", "data": {}}],
		"edges": []
	}`

	r := newTestRouter(t)
	w := postRun(t, r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("unknown block type is a per-node failure, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeRun(t, w)
	res := resp.Results["mystery"]
	if res.Success {
		t.Fatal("expected failed result")
	}
	if !strings.Contains(res.Error, "quantum_flux") || !strings.Contains(res.Error, "math_operation") {
		t.Errorf("error must name the type and enumerate registered ones, got %q", res.Error)
	}
}

func TestRunFlow_TextJoinFlow(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "t1", "type": "text_input", "data": {"value": "hello"}},
			{"id": "t2", "type": "text_input", "data": {"value": "world"}},
			{"id": "join", "type": "text_join", "data": {"config": {"separator": " "}}},
			{"id": "out", "type": "text_output", "data": {"is_output": true}}
		],
		"edges": [
			{"id": "e1", "source": "t1", "target": "join", "targetHandle": "a"},
			{"id": "e2", "source": "t2", "target": "join", "targetHandle": "b"},
			{"id": "e3", "source": "join", "target": "out", "targetHandle": "text"}
		]
	}`

	r := newTestRouter(t)
	w := postRun(t, r, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeRun(t, w)
	if out := resp.Results["out"]; !out.Success || out.Value != "hello world" {
		t.Errorf("expected joined output, got %+v", out)
	}
}
