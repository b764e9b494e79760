package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCyclicGraph(t *testing.T) {
	err := CyclicGraph("graph contains a cycle")
	if err.Code != ErrCodeCyclicGraph {
		t.Errorf("expected code %s, got %s", ErrCodeCyclicGraph, err.Code)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("cyclic graph must not be retryable")
	}
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)
	if err.Unwrap() != cause {
		t.Error("expected cause to be unwrappable")
	}
	if !err.Retryable {
		t.Error("internal errors are retryable")
	}
}

func TestError_String(t *testing.T) {
	err := Validation("nodes is required")
	want := "INVALID_INPUT: nodes is required"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	withCause := Validation("bad").WithCause(fmt.Errorf("inner"))
	if withCause.Error() != "INVALID_INPUT: bad (cause: inner)" {
		t.Errorf("unexpected message: %q", withCause.Error())
	}
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("wrapped: %w", NotFound("flow", "f1")))
	if !ok {
		t.Fatal("expected AppError through wrapping")
	}
	if appErr.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("plain error must not convert")
	}
}

func TestToResponse(t *testing.T) {
	err := DuplicateNode("n1")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeDuplicateNode {
		t.Errorf("expected DUPLICATE_NODE, got %s", resp.Error.Code)
	}
	if resp.Error.Details["node_id"] != "n1" {
		t.Errorf("expected node_id detail, got %v", resp.Error.Details)
	}
}
