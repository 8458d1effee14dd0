package skillet

import (
	"context"

	"skillet/ingredient"
	"skillet/tools"
)

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
	PostIngredients(ctx context.Context, channel string, list ingredient.List) error
}

type ToolProvider interface {
	GetTools() []tools.Tool
	GetTool(name string) (tools.Tool, error)
}

// IngredientParser is implemented by every parsing backend: the grammar
// parser, its instrumented wrapper and the model-backed client.
type IngredientParser interface {
	ParseContext(ctx context.Context, text string) (ingredient.List, error)
}
