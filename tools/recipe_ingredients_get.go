package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"skillet/grammar"
	"skillet/tools/storage"
)

type RecipeIngredientsGet struct {
	source storage.RecipeSource
	parser Parser
}

func NewRecipeIngredientsGet(source storage.RecipeSource, parser Parser) *RecipeIngredientsGet {
	return &RecipeIngredientsGet{source: source, parser: parser}
}

func (t *RecipeIngredientsGet) Name() string  { return "recipe_ingredients_get" }
func (t *RecipeIngredientsGet) Title() string { return "Get Recipe Ingredients" }
func (t *RecipeIngredientsGet) Description() string {
	return "Loads the configured recipe and returns its ingredients, parsed."
}

func (t *RecipeIngredientsGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}
}

func (t *RecipeIngredientsGet) OutputSchema() *jsonschema.Schema {
	return ingredientsOutputSchema()
}

func (t *RecipeIngredientsGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	b, err := t.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}

	list, err := t.parser.ParseContext(ctx, grammar.Terminate(string(b)))
	if err != nil {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	return ingredientsOutput(list)
}
