// Package main generates a JSON schema skeleton for the trendscope
// configuration structs. The hand-tuned pkg/config/schema.json adds
// bounds and enums on top of this skeleton.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/trendscope/pkg/config"
)

// Schema represents a JSON Schema.
type Schema struct {
	Schema      string             `json:"$schema,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        any                `json:"type,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

func main() {
	var output string

	flag.StringVar(&output, "o", "", "Output file (default: stdout)")
	flag.Parse()

	data, err := json.MarshalIndent(generateSchema(&config.Config{}), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	data = append(data, '\n')

	if output == "" {
		_, _ = os.Stdout.Write(data)

		return
	}

	writeErr := os.WriteFile(output, data, 0o644)
	if writeErr != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, writeErr)
		os.Exit(1)
	}

	fmt.Printf("Generated configuration schema in %s\n", output)
}

func generateSchema(v any) *Schema {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	props, required := structToProperties(t)

	return &Schema{
		Schema:     "http://json-schema.org/draft-07/schema#",
		Title:      "trendscope configuration",
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// structToProperties maps each json-tagged field. Top-level sections are
// required so a decoded config always carries them.
func structToProperties(t reflect.Type) (map[string]*Schema, []string) {
	props := make(map[string]*Schema)

	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")

		if jsonTag == "-" || jsonTag == "" {
			continue
		}

		name, _, _ := strings.Cut(jsonTag, ",")
		props[name] = typeToSchema(field.Type)

		if field.Type.Kind() == reflect.Struct {
			required = append(required, name)
		}
	}

	return props, required
}

func typeToSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if t == reflect.TypeOf(time.Duration(0)) {
			return &Schema{Type: "integer", Description: "Duration in nanoseconds"}
		}

		return &Schema{Type: "integer"}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Slice:
		// A nil slice encodes as null.
		return &Schema{
			Type:  []string{"array", "null"},
			Items: typeToSchema(t.Elem()),
		}

	case reflect.Struct:
		props, required := structToProperties(t)

		return &Schema{Type: "object", Properties: props, Required: required}

	case reflect.Ptr:
		return typeToSchema(t.Elem())

	default:
		return &Schema{Type: "object"}
	}
}
