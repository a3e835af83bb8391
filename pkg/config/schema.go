package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// validateSchema checks the decoded configuration against the embedded
// JSON schema and reports every violation in one error.
func validateSchema(cfg *Config) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(cfg),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, verr.Field()+": "+verr.Description())
	}

	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}
