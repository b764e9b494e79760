package blocks

import (
	"context"
	"fmt"

	"github.com/skillsenselab/cortex/logger"
)

// MathOperationConfig configures a math_operation block.
type MathOperationConfig struct {
	Operation string `json:"operation" validate:"oneof=add subtract multiply divide"`
}

// operationNames maps operations to display names for logging.
var operationNames = map[string]string{
	"add":      "addition",
	"subtract": "subtraction",
	"multiply": "multiplication",
	"divide":   "division",
}

// MathOperation performs basic arithmetic on the two numeric inputs bound to
// handles "a" and "b".
type MathOperation struct {
	nodeID string
	config map[string]any
	log    *logger.Logger
}

// NewMathOperation constructs a math_operation block.
func NewMathOperation(nodeID string, config map[string]any) Block {
	return &MathOperation{nodeID: nodeID, config: config, log: logger.WithComponent("blocks")}
}

func (b *MathOperation) NodeID() string { return b.nodeID }

// Run executes the configured arithmetic operation. The result keeps integer
// form when both operands are whole and the mathematical result is whole
// (10 / 2 yields 5, not 5.0).
func (b *MathOperation) Run(_ context.Context, inputs map[string]any) Result {
	cfg := MathOperationConfig{Operation: "add"}
	if err := decodeConfig(b.config, &cfg); err != nil {
		return fail(err.Error())
	}

	a, res := requireNumericInput(inputs, "a")
	if res != nil {
		return *res
	}
	bVal, res := requireNumericInput(inputs, "b")
	if res != nil {
		return *res
	}

	var raw float64
	switch cfg.Operation {
	case "add":
		raw = a + bVal
	case "subtract":
		raw = a - bVal
	case "multiply":
		raw = a * bVal
	default: // divide
		if bVal == 0 {
			b.log.Error("division by zero", map[string]interface{}{"node_id": b.nodeID})
			return fail("Division by zero is undefined.")
		}
		raw = a / bVal
	}

	var value any = raw
	resultType := "float"
	if isWhole(a) && isWhole(bVal) && isWhole(raw) {
		value = int64(raw)
		resultType = "int"
	}

	b.log.Debug("math operation completed", map[string]interface{}{
		"node_id":   b.nodeID,
		"operation": operationNames[cfg.Operation],
	})

	return ok(value, map[string]any{
		"operation":   cfg.Operation,
		"result_type": resultType,
	})
}

// requireNumericInput extracts a required numeric operand from the inputs.
// It returns either the value or a failed Result.
func requireNumericInput(inputs map[string]any, handle string) (float64, *Result) {
	v, present := inputs[handle]
	if !present {
		r := fail(fmt.Sprintf("Required input '%s' is missing from inputs.", handle))
		return 0, &r
	}
	f, _, okNum := asNumber(v)
	if !okNum {
		r := fail(fmt.Sprintf("Input '%s' must be numeric (int or float), got %T.", handle, v))
		return 0, &r
	}
	return f, nil
}
