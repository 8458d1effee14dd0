// Package aiparser parses ingredient lines with a language model instead of
// the grammar. It is slower and non-deterministic, but tolerates lines the
// grammar rejects.
package aiparser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"skillet/grammar"
	"skillet/ingredient"
)

const (
	// defaultModelID is an inference profile ID, not the foundation model's ID.
	// See https://docs.aws.amazon.com/bedrock/latest/userguide/inference-profiles.html.
	defaultModelID = "us.anthropic.claude-3-7-sonnet-20250219-v1:0"

	// One ingredient as JSON is small.
	defaultMaxTokens = 512

	// Structured output wants deterministic answers.
	defaultTemperature = 0.1

	defaultTopP = 0.9
)

type bedrockRuntimeClient interface {
	Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type LLMOptions struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// Client asks a Bedrock hosted model for one ingredient at a time.
type Client struct {
	brc  bedrockRuntimeClient
	opts LLMOptions
}

func NewClient(brc bedrockRuntimeClient, opts LLMOptions) *Client {
	if opts.ModelID == "" {
		opts.ModelID = defaultModelID
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.TopP == 0 {
		opts.TopP = defaultTopP
	}
	return &Client{
		brc:  brc,
		opts: opts,
	}
}

// ParseLine asks the model to structure a single ingredient line.
func (c *Client) ParseLine(ctx context.Context, line string) (ingredient.Ingredient, error) {
	line = normalizeLine(line)
	if line == "" {
		return ingredient.Ingredient{}, grammar.ErrEmptyInput
	}

	in := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.opts.ModelID),
		System:  []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: systemPrompt}},
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: line}},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(c.opts.MaxTokens),
			Temperature: aws.Float32(c.opts.Temperature),
			TopP:        aws.Float32(c.opts.TopP),
		},
	}

	out, err := c.brc.Converse(ctx, in)
	if err != nil {
		slog.Error("LLM_CLIENT: Bedrock invoke failed", "error", err, "line", line)
		return ingredient.Ingredient{}, fmt.Errorf("invoke model: %w", err)
	}

	if out.Usage != nil {
		slog.Info("LLM_CLIENT: Bedrock invoke succeeded",
			"stop_reason", out.StopReason,
			"input_tokens", aws.ToInt32(out.Usage.InputTokens),
			"output_tokens", aws.ToInt32(out.Usage.OutputTokens),
		)
	}

	switch out.StopReason {
	case types.StopReasonMaxTokens:
		slog.Warn("LLM_CLIENT: Model hit MaxTokens limit", "max_tokens", c.opts.MaxTokens)
		return ingredient.Ingredient{}, fmt.Errorf("model hit MaxTokens limit")
	case types.StopReasonGuardrailIntervened, types.StopReasonContentFiltered:
		slog.Warn("LLM_CLIENT: Model response blocked by Bedrock safety filters")
		return ingredient.Ingredient{}, fmt.Errorf("model response blocked by Bedrock safety filters")
	}

	text := textFromOutput(out)
	if text == "" {
		return ingredient.Ingredient{}, fmt.Errorf("model returned no text for %q", line)
	}

	var ing ingredient.Ingredient
	if err := json.Unmarshal([]byte(text), &ing); err != nil {
		return ingredient.Ingredient{}, fmt.Errorf("model output for %q is not a valid ingredient: %w", line, err)
	}
	return ing, nil
}

// textFromOutput returns the last text block that looks like a single JSON
// object, or all text blocks joined when none does.
func textFromOutput(out *bedrockruntime.ConverseOutput) string {
	if out == nil || out.Output == nil {
		return ""
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || msg == nil || len(msg.Value.Content) == 0 {
		return ""
	}

	texts := make([]string, 0, len(msg.Value.Content))
	for _, cb := range msg.Value.Content {
		if t, ok := cb.(*types.ContentBlockMemberText); ok && t != nil && t.Value != "" {
			texts = append(texts, t.Value)
		}
	}

	for i := len(texts) - 1; i >= 0; i-- {
		s := stripCodeFence(strings.TrimSpace(texts[i]))
		if len(s) > 1 && s[0] == '{' && s[len(s)-1] == '}' {
			return s
		}
	}
	return strings.Join(texts, "\n")
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}

func normalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}
