package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"skillet"
	"skillet/aiparser"
	"skillet/grammar"
	"skillet/ingredient"
	"skillet/slack"
	"skillet/tools/storage"
)

type Params struct {
	Text    string `json:"text,omitempty"`
	Bucket  string `json:"bucket,omitempty"`
	Key     string `json:"key,omitempty"`
	Channel string `json:"channel,omitempty"`
}

type Results struct {
	Ingredients ingredient.List `json:"ingredients"`
	Count       int             `json:"count"`
}

type handler struct {
	parser        skillet.IngredientParser
	sourceFor     func(bucket, key string) storage.RecipeSource
	defaultBucket string
	slack         skillet.SlackClient
	// channel is used when the event names none.
	channel string
}

func (h *handler) handle(ctx context.Context, params Params) (Results, error) {
	text := params.Text
	if params.Key != "" {
		bucket := params.Bucket
		if bucket == "" {
			bucket = h.defaultBucket
		}
		if bucket == "" {
			return Results{}, fmt.Errorf("missing S3 bucket for key %q: set bucket or RECIPE_S3_BUCKET", params.Key)
		}

		data, err := h.sourceFor(bucket, params.Key).Load(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to load recipe from S3", "error", err)
			return Results{}, err
		}
		text = string(data)
		slog.Info("SETUP: Recipe loaded from S3", "bucket", bucket, "key", params.Key, "bytes", len(data))
	}

	list, err := h.parser.ParseContext(ctx, grammar.Terminate(text))
	if err != nil {
		slog.Error("RESULT: Failed to parse ingredients", "error", err, "error_type", grammar.ErrorType(err))
		return Results{}, err
	}

	channel := params.Channel
	if channel == "" {
		channel = h.channel
	}
	if channel != "" && h.slack != nil {
		if err := h.slack.PostIngredients(ctx, channel, list); err != nil {
			slog.Error("RESULT: Failed to post ingredients to Slack", "error", err)
		}
	}

	return Results{Ingredients: list, Count: len(list)}, nil
}

func main() {
	ctx := context.Background()

	var parserConfig skillet.ParserConfig
	if err := envdecode.Decode(&parserConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}
	if err := parserConfig.Validate(); err != nil {
		log.Fatalf("Invalid parser config: %s", err)
	}

	var sourceConfig skillet.SourceConfig
	if err := envdecode.Decode(&sourceConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var modelConfig skillet.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %s", err)
	}
	s3Client := s3.NewFromConfig(awsCfg)

	tracerProvider, meterProvider, otelShutdown, err := skillet.InitOtel(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %s", err)
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	var parser skillet.IngredientParser
	switch parserConfig.Backend {
	case skillet.BackendModel:
		parser = aiparser.NewClient(bedrockruntime.NewFromConfig(awsCfg), modelConfig.LLMOptions())
	default:
		opts, err := parserConfig.Options()
		if err != nil {
			log.Fatalf("Invalid parser config: %s", err)
		}
		parser = grammar.NewInstrumentedParser(
			grammar.NewParser(opts),
			tracerProvider.Tracer(skillet.TracerNameLambda),
			meterProvider.Meter(skillet.MeterNameParser),
		)
	}
	parser = skillet.NewLoggedParser(parser, parserConfig.Backend, skillet.NewStdoutParseLogger())

	h := &handler{
		parser: parser,
		sourceFor: func(bucket, key string) storage.RecipeSource {
			return storage.NewS3RecipeSource(s3Client, bucket, key)
		},
		defaultBucket: sourceConfig.RecipeS3Bucket,
	}
	if sourceConfig.SlackWebhookURL != "" {
		h.slack = slack.NewClient(sourceConfig.SlackWebhookURL, http.DefaultClient)
		h.channel = sourceConfig.SlackChannel
	}
	slog.Info("SETUP: Lambda handler initialized", "backend", parserConfig.Backend)

	lambda.Start(h.handle)
}
