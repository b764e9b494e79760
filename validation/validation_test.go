package validation

import (
	"strings"
	"testing"

	"github.com/skillsenselab/cortex/errors"
)

type sampleConfig struct {
	Operation string `json:"operation" validate:"required,oneof=add subtract multiply divide"`
	MaxLength int    `json:"maxLength" validate:"omitempty,gte=1"`
}

func TestValidate_OK(t *testing.T) {
	cfg := sampleConfig{Operation: "add", MaxLength: 10}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RequiredMissing(t *testing.T) {
	err := Validate(sampleConfig{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "operation") {
		t.Errorf("expected message to name the field, got %q", appErr.Message)
	}
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(sampleConfig{Operation: "modulo"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("expected oneof message, got %q", err.Error())
	}
}

func TestValidate_FieldDetails(t *testing.T) {
	err := Validate(sampleConfig{Operation: "add", MaxLength: -1})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatal("expected AppError")
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 1 {
		t.Fatalf("expected one field error, got %v", appErr.Details)
	}
	if fields[0].Field != "max_length" {
		t.Errorf("expected snake_case field name, got %s", fields[0].Field)
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"MaxLength":  "max_length",
		"ID":         "i_d",
		"value":      "value",
		"NumberType": "number_type",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
