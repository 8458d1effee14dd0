package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"skillet/ingredient"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

// Call names a tool and the input to run it with.
type Call struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// Parser is the parsing backend a tool hands recipe text to.
type Parser interface {
	ParseContext(ctx context.Context, text string) (ingredient.List, error)
}

func ingredientsOutputSchema() *jsonschema.Schema {
	minCount := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"ingredients": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"measurement": {
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"quantity": {
									Type: "object",
									Properties: map[string]*jsonschema.Schema{
										"kind": {Type: "string", Enum: []any{"decimal", "fraction", "range"}},
									},
									Required: []string{"kind"},
								},
								"unit":      {Type: "string"},
								"unit_name": {Type: "string"},
							},
							Required: []string{"quantity"},
						},
						"name": {Type: "string"},
						"comment": {
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"marker": {Type: "string"},
								"text":   {Type: "string"},
								"closed": {Type: "boolean"},
							},
						},
					},
					Required: []string{"name"},
				},
			},
			"count": {Type: "integer", Minimum: &minCount},
		},
		Required: []string{"ingredients", "count"},
	}
}

func ingredientsOutput(list ingredient.List) (map[string]any, error) {
	out := struct {
		Ingredients ingredient.List `json:"ingredients"`
		Count       int             `json:"count"`
	}{
		Ingredients: list,
		Count:       len(list),
	}
	if out.Ingredients == nil {
		out.Ingredients = ingredient.List{}
	}

	// marshal -> map[string]any to keep outputs uniform
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode ingredients: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("encode ingredients: %w", err)
	}
	return m, nil
}
