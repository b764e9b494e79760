package blocks

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/skillsenselab/cortex/validation"
)

// decodeConfig decodes a node's opaque configuration map into a typed config
// struct and validates it. The target should be pre-populated with defaults:
// absent keys leave them untouched. Decoding is weakly typed so callers can
// submit "5" where 5 is meant, mirroring the forgiving frontend contract.
func decodeConfig(config map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("building config decoder: %w", err)
	}
	if err := dec.Decode(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return validation.Validate(out)
}
