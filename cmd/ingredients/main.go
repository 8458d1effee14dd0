package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/alecthomas/repr"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/alecthomas/kingpin.v2"

	"skillet"
	"skillet/aiparser"
	"skillet/grammar"
	"skillet/ingredient"
	"skillet/slack"
	"skillet/tools"
	"skillet/tools/storage"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatRepr = "repr"
	formatDump = "dump"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A local .env is optional; the environment wins over it.
	_ = godotenv.Load()

	var parserConfig skillet.ParserConfig
	if err := envdecode.Decode(&parserConfig); err != nil {
		return fmt.Errorf("decode parser config: %w", err)
	}

	var sourceConfig skillet.SourceConfig
	if err := envdecode.Decode(&sourceConfig); err != nil {
		return fmt.Errorf("decode source config: %w", err)
	}

	var modelConfig skillet.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		return fmt.Errorf("decode model config: %w", err)
	}

	var (
		file          = kingpin.Arg("file", "Recipe file, one ingredient per line. Reads stdin when omitted or \"-\".").Default(sourceConfig.RecipePath).String()
		backend       = kingpin.Flag("backend", "Parsing backend.").Default(parserConfig.Backend).Enum(skillet.BackendGrammar, skillet.BackendModel)
		ranges        = kingpin.Flag("ranges", "Accept quantity ranges such as 2-3 (--no-ranges to disable).").Default(strconv.FormatBool(parserConfig.Ranges)).Bool()
		commentPolicy = kingpin.Flag("comment-policy", "How comment text is read.").Default(parserConfig.CommentPolicy).Enum(grammar.CommentFreeText.String(), grammar.CommentLegacy.String())
		format        = kingpin.Flag("format", "Output format.").Short('f').Default(formatText).Enum(formatText, formatJSON, formatRepr, formatDump)
		tokens        = kingpin.Flag("tokens", "Print the token stream instead of parsing.").Bool()
		listTools     = kingpin.Flag("list-tools", "List the agent tools and their input schemas, then exit.").Bool()
		call          = kingpin.Flag("call", "Run the named agent tool and print its JSON output.").String()
		callInput     = kingpin.Flag("input", "JSON object handed to the --call tool.").Default("{}").String()
		s3Bucket      = kingpin.Flag("s3-bucket", "Read the recipe from this S3 bucket.").Default(sourceConfig.RecipeS3Bucket).String()
		s3Key         = kingpin.Flag("s3-key", "Key of the recipe object in --s3-bucket.").Default(sourceConfig.RecipeS3Key).String()
		logFile       = kingpin.Flag("log-file", "Write a parse log under ./logs.").Bool()
		withOtel      = kingpin.Flag("otel", "Export traces and metrics over OTLP.").Bool()
		slackChannel  = kingpin.Flag("slack-channel", "Post the ingredients to this channel (needs SLACK_WEBHOOK_URL).").String()
	)
	kingpin.Parse()

	parserConfig.Backend = *backend
	parserConfig.Ranges = *ranges
	parserConfig.CommentPolicy = *commentPolicy
	opts, err := parserConfig.Options()
	if err != nil {
		return err
	}

	source, err := newRecipeSource(ctx, *file, *s3Bucket, *s3Key)
	if err != nil {
		return err
	}

	var parser skillet.IngredientParser
	switch parserConfig.Backend {
	case skillet.BackendModel:
		brc, err := newBedrockRuntimeClient(ctx)
		if err != nil {
			return fmt.Errorf("create Bedrock client: %w", err)
		}
		parser = aiparser.NewClient(brc, modelConfig.LLMOptions())
	default:
		parser = grammar.NewParser(opts)
	}

	if *listTools || *call != "" {
		registry, err := tools.NewRegistry(opts, parser, source)
		if err != nil {
			return err
		}
		if *listTools {
			return printTools(os.Stdout, registry)
		}
		return runTool(ctx, os.Stdout, registry, *call, *callInput)
	}

	data, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}
	text := grammar.Terminate(string(data))

	if *tokens {
		toks, err := grammar.Tokenize(text)
		if err != nil {
			return err
		}
		for _, tok := range toks {
			fmt.Printf("%s\t%s\n", tok.Pos, tok)
		}
		return nil
	}

	if *withOtel {
		tracerProvider, meterProvider, otelShutdown, err := skillet.InitOtel(ctx)
		if err != nil {
			return fmt.Errorf("initialize OpenTelemetry: %w", err)
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		if gp, ok := parser.(*grammar.Parser); ok {
			parser = grammar.NewInstrumentedParser(gp, tracerProvider.Tracer(skillet.TracerNameCLI), meterProvider.Meter(skillet.MeterNameParser))
		}

		var span trace.Span
		ctx, span = tracerProvider.Tracer(skillet.TracerNameCLI).Start(ctx, skillet.TracerNameCLI, trace.WithAttributes(
			attribute.String("parser.backend", parserConfig.Backend),
			attribute.String("recipe.source", fmt.Sprintf("%T", source)),
		))
		defer span.End()
	}

	if *logFile {
		logger, cleanup, err := newParseLogger(parserConfig.Backend)
		if err != nil {
			return err
		}
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("Failed to flush parse log", "error", err)
			}
		}()
		parser = skillet.NewLoggedParser(parser, parserConfig.Backend, logger)
	}

	list, err := parser.ParseContext(ctx, text)
	if err != nil {
		slog.Error("RESULT: Failed to parse ingredients", "error", err, "error_type", grammar.ErrorType(err))
		return err
	}

	if err := writeIngredients(os.Stdout, *format, list); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if *slackChannel != "" {
		if sourceConfig.SlackWebhookURL == "" {
			return errors.New("--slack-channel needs SLACK_WEBHOOK_URL")
		}
		slackClient := slack.NewClient(sourceConfig.SlackWebhookURL, http.DefaultClient)
		if err := slackClient.PostIngredients(ctx, *slackChannel, list); err != nil {
			slog.Error("Failed to post ingredients to Slack", "error", err)
		}
	}
	return nil
}

// newRecipeSource prefers a named file, then an S3 key, then stdin. A bucket
// alone is only a default and does not select S3.
func newRecipeSource(ctx context.Context, file, bucket, key string) (storage.RecipeSource, error) {
	switch {
	case file != "" && file != "-":
		return storage.NewFileRecipeSource(file), nil
	case key != "":
		if bucket == "" {
			return nil, errors.New("--s3-key needs --s3-bucket or RECIPE_S3_BUCKET")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return storage.NewS3RecipeSource(s3.NewFromConfig(awsCfg), bucket, key), nil
	default:
		return storage.NewReaderRecipeSource(os.Stdin), nil
	}
}

func newBedrockRuntimeClient(ctx context.Context) (*bedrockruntime.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}

func newParseLogger(backend string) (skillet.ParseLogger, func() error, error) {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	logFilePath := skillet.NewParseLogFilePath(backend)
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := skillet.NewFileParseLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}

func writeIngredients(w io.Writer, format string, list ingredient.List) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case formatRepr:
		_, err := fmt.Fprintln(w, repr.String(list, repr.Indent("  ")))
		return err
	case formatDump:
		_, err := io.WriteString(w, skillet.Sdump(list))
		return err
	default:
		_, err := io.WriteString(w, list.String())
		return err
	}
}

func printTools(w io.Writer, provider skillet.ToolProvider) error {
	list := provider.GetTools()
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })

	for _, tool := range list {
		schema, err := json.Marshal(tool.InputSchema())
		if err != nil {
			return fmt.Errorf("encode schema of %s: %w", tool.Name(), err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n\t%s\n\t%s\n", tool.Name(), tool.Title(), tool.Description(), schema); err != nil {
			return err
		}
	}
	return nil
}

func runTool(ctx context.Context, w io.Writer, registry *tools.Registry, name, input string) error {
	call := tools.Call{Name: name}
	if err := json.Unmarshal([]byte(input), &call.Input); err != nil {
		return fmt.Errorf("decode --input for %s: %w", name, err)
	}

	out, err := registry.Run(ctx, call)
	if err != nil {
		return fmt.Errorf("run tool %s: %w", name, err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
