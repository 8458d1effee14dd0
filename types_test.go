package skillet

import (
	"skillet/aiparser"
	"skillet/grammar"
	"skillet/slack"
	"skillet/tools"
)

var (
	_ IngredientParser = (*grammar.Parser)(nil)
	_ IngredientParser = (*grammar.InstrumentedParser)(nil)
	_ IngredientParser = (*aiparser.Client)(nil)
	_ IngredientParser = (*LoggedParser)(nil)
	_ SlackClient      = (*slack.Client)(nil)
	_ ToolProvider     = (*tools.Registry)(nil)
	_ tools.Parser     = IngredientParser(nil)
)
