package skillet

import (
	"fmt"

	"skillet/aiparser"
	"skillet/grammar"
)

const (
	BackendGrammar = "grammar"
	BackendModel   = "model"
)

// ParserConfig selects the parsing backend and the grammar revision.
type ParserConfig struct {
	Backend       string `env:"PARSER_BACKEND,default=grammar"`
	Ranges        bool   `env:"PARSER_RANGES,default=true"`
	CommentPolicy string `env:"PARSER_COMMENT_POLICY,default=freetext"`
}

// Options returns the grammar options described by c.
func (c ParserConfig) Options() (grammar.Options, error) {
	policy, err := grammar.ParseCommentPolicy(c.CommentPolicy)
	if err != nil {
		return grammar.Options{}, err
	}
	return grammar.Options{Ranges: c.Ranges, CommentPolicy: policy}, nil
}

// Validate reports an unknown backend or comment policy.
func (c ParserConfig) Validate() error {
	switch c.Backend {
	case BackendGrammar, BackendModel:
	default:
		return fmt.Errorf("unknown parser backend %q", c.Backend)
	}
	_, err := c.Options()
	return err
}

// ModelConfig tunes the model-backed parser. An empty ModelID picks the
// client's default inference profile.
type ModelConfig struct {
	ModelID     string  `env:"MODEL_ID"`
	MaxTokens   int32   `env:"MAX_TOKENS,default=512"`
	Temperature float32 `env:"TEMPERATURE,default=0.1"`
	TopP        float32 `env:"TOP_P,default=0.9"`
}

func (c ModelConfig) LLMOptions() aiparser.LLMOptions {
	return aiparser.LLMOptions{
		ModelID:     c.ModelID,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		TopP:        c.TopP,
	}
}

// SourceConfig locates recipe text and where to announce results.
type SourceConfig struct {
	RecipePath      string `env:"RECIPE_PATH"`
	RecipeS3Bucket  string `env:"RECIPE_S3_BUCKET"`
	RecipeS3Key     string `env:"RECIPE_S3_KEY"`
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"SLACK_CHANNEL,default=#kitchen"`
}
