package grammar

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"skillet/ingredient"
)

// InstrumentedParser wraps a Parser with tracing and metrics.
type InstrumentedParser struct {
	parser *Parser
	tracer trace.Tracer

	runsCounter        metric.Int64Counter
	failuresCounter    metric.Int64Counter
	ingredientsCounter metric.Int64Counter
	durationHist       metric.Float64Histogram
	inputSizeGauge     metric.Int64Gauge
}

// NewInstrumentedParser initializes the instruments on meter and returns the
// wrapped parser.
func NewInstrumentedParser(parser *Parser, tracer trace.Tracer, meter metric.Meter) *InstrumentedParser {
	runsCounter, _ := meter.Int64Counter("parser_runs_total",
		metric.WithDescription("Total number of ingredient parse runs started"))
	failuresCounter, _ := meter.Int64Counter("parser_runs_failed_total",
		metric.WithDescription("Total number of ingredient parse runs that failed"))
	ingredientsCounter, _ := meter.Int64Counter("ingredients_parsed_total",
		metric.WithDescription("Total number of ingredient lines parsed successfully"))
	durationHist, _ := meter.Float64Histogram("parse_duration_seconds",
		metric.WithDescription("Duration of a parse run in seconds"))
	inputSizeGauge, _ := meter.Int64Gauge("parse_input_size_bytes",
		metric.WithDescription("Size of the text handed to the parser in bytes"))

	return &InstrumentedParser{
		parser:             parser,
		tracer:             tracer,
		runsCounter:        runsCounter,
		failuresCounter:    failuresCounter,
		ingredientsCounter: ingredientsCounter,
		durationHist:       durationHist,
		inputSizeGauge:     inputSizeGauge,
	}
}

// ParseContext parses text inside a span and records the run.
func (p *InstrumentedParser) ParseContext(ctx context.Context, text string) (ingredient.List, error) {
	ctx, span := p.tracer.Start(ctx, "InstrumentedParser.Parse", trace.WithAttributes(
		attribute.Bool("parser.ranges", p.parser.opts.Ranges),
		attribute.String("parser.comment_policy", p.parser.opts.CommentPolicy.String()),
		attribute.Int("parser.input_bytes", len(text)),
	))
	defer span.End()

	p.runsCounter.Add(ctx, 1)
	p.inputSizeGauge.Record(ctx, int64(len(text)))

	start := time.Now()
	list, err := p.parser.ParseContext(ctx, text)
	duration := time.Since(start)
	p.durationHist.Record(ctx, duration.Seconds())

	if err != nil {
		errType := ErrorType(err)
		p.failuresCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("error_type", errType)))
		span.SetStatus(codes.Error, "Parse failed")
		span.RecordError(err)
		slog.Info("PARSER: Parse failed", "error", err, "error_type", errType, "duration_ms", duration.Milliseconds())
		return nil, err
	}

	p.ingredientsCounter.Add(ctx, int64(len(list)))
	span.AddEvent("Ingredients parsed", trace.WithAttributes(
		attribute.Int("ingredients_count", len(list)),
		attribute.Float64("parse_duration_seconds", duration.Seconds()),
	))
	slog.Info("PARSER: Parse succeeded", "ingredients", len(list), "duration_ms", duration.Milliseconds())

	return list, nil
}
