package tools

import (
	"context"
	"fmt"

	"skillet/grammar"
	"skillet/tools/storage"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a new tool registry. ingredients_parse uses opts as its
// defaults; recipe_ingredients_get reads source and parses it with parser.
func NewRegistry(opts grammar.Options, parser Parser, source storage.RecipeSource) (*Registry, error) {
	if parser == nil {
		return nil, fmt.Errorf("tool registry needs a parser")
	}
	if source == nil {
		return nil, fmt.Errorf("tool registry needs a recipe source")
	}

	tools := map[string]Tool{
		"ingredients_parse":      NewIngredientsParse(opts),
		"recipe_ingredients_get": NewRecipeIngredientsGet(source, parser),
	}

	registry := Registry(tools)
	return &registry, nil
}

// GetTools returns all tools in the registry as a slice
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

// Run looks up the tool named by call and runs it with the call's input.
func (r Registry) Run(ctx context.Context, call Call) (map[string]any, error) {
	tool, err := r.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	return tool.Run(ctx, input)
}
