package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/trendscope/pkg/config"
)

// flatten maps every property path to its JSON type.
func flatten(prefix string, node map[string]any, out map[string]string) {
	if typ, ok := node["type"]; ok && prefix != "" {
		out[prefix] = fmt.Sprint(typ)
	}

	if items, ok := node["items"].(map[string]any); ok {
		flatten(prefix+"[]", items, out)
	}

	props, _ := node["properties"].(map[string]any)
	for name, child := range props {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		childNode, ok := child.(map[string]any)
		if ok {
			flatten(path, childNode, out)
		}
	}
}

func decode(t *testing.T, data []byte) map[string]string {
	t.Helper()

	var node map[string]any
	require.NoError(t, json.Unmarshal(data, &node))

	out := make(map[string]string)
	flatten("", node, out)

	return out
}

func TestGenerateSchema_MatchesEmbeddedSchema(t *testing.T) {
	t.Parallel()

	generated, err := json.Marshal(generateSchema(&config.Config{}))
	require.NoError(t, err)

	embedded, err := os.ReadFile(filepath.Join("..", "..", "pkg", "config", "schema.json"))
	require.NoError(t, err)

	assert.Equal(t, decode(t, embedded), decode(t, generated))
}

func TestGenerateSchema_TopLevelSectionsRequired(t *testing.T) {
	t.Parallel()

	schema := generateSchema(&config.Config{})

	assert.ElementsMatch(t,
		[]string{"provider", "report", "visualize", "output", "logging", "telemetry"},
		schema.Required)
	assert.Equal(t, "integer", schema.Properties["provider"].Properties["timeout"].Type)
	assert.Equal(t, []string{"array", "null"}, schema.Properties["report"].Properties["keywords"].Type)
	assert.Equal(t, "integer", schema.Properties["report"].Properties["categories"].Items.Properties["category"].Type)
}
