package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"skillet/grammar"
)

// IngredientsParse parses ingredient text handed in by the caller. The grammar
// options can be overridden per call.
type IngredientsParse struct{ opts grammar.Options }

func NewIngredientsParse(opts grammar.Options) *IngredientsParse {
	return &IngredientsParse{opts: opts}
}

func (t *IngredientsParse) Name() string  { return "ingredients_parse" }
func (t *IngredientsParse) Title() string { return "Parse Ingredients" }
func (t *IngredientsParse) Description() string {
	return "Parses ingredient lines (quantity, unit, name, comment) into structured ingredients."
}

func (t *IngredientsParse) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"text": {
				Type:        "string",
				Description: "Ingredient lines, one ingredient per line.",
			},
			"ranges": {
				Type:        "boolean",
				Description: "Accept quantity ranges such as 2-3.",
			},
			"comment_policy": {
				Type: "string",
				Enum: []any{grammar.CommentFreeText.String(), grammar.CommentLegacy.String()},
			},
		},
		Required: []string{"text"},
	}
}

func (t *IngredientsParse) OutputSchema() *jsonschema.Schema {
	return ingredientsOutputSchema()
}

func (t *IngredientsParse) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	text, ok := input["text"].(string)
	if !ok {
		return nil, fmt.Errorf("missing required input %q", "text")
	}

	opts := t.opts
	if v, ok := input["ranges"].(bool); ok {
		opts.Ranges = v
	}
	if v, ok := input["comment_policy"].(string); ok {
		policy, err := grammar.ParseCommentPolicy(v)
		if err != nil {
			return nil, err
		}
		opts.CommentPolicy = policy
	}

	list, err := grammar.NewParser(opts).ParseContext(ctx, grammar.Terminate(text))
	if err != nil {
		return nil, fmt.Errorf("parse ingredients: %w", err)
	}
	return ingredientsOutput(list)
}
