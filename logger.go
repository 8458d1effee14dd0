package skillet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"skillet/grammar"
	"skillet/ingredient"
)

// ParseLogger records parse runs.
type ParseLogger interface {
	LogParse(entry ParseLog) error
}

// NewParseLogFilePath returns a file path that tells runs of different
// backends apart.
func NewParseLogFilePath(backend string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(backend), ":", "_"),
	)
}

// ParseLog is a single parse run.
type ParseLog struct {
	Timestamp   time.Time       `json:"timestamp"`
	Backend     string          `json:"backend"`
	InputBytes  int             `json:"input_bytes"`
	Ingredients ingredient.List `json:"ingredients,omitempty"`
	Count       int             `json:"count"`
	DurationMs  int64           `json:"duration_ms"`
	Error       string          `json:"error,omitempty"`
	ErrorType   string          `json:"error_type,omitempty"`
}

// FileParseLogger accumulates runs and writes them on Flush
type FileParseLogger struct {
	runs   []ParseLog
	writer io.Writer
}

func NewFileParseLogger(writer io.Writer) *FileParseLogger {
	return &FileParseLogger{
		runs:   make([]ParseLog, 0),
		writer: writer,
	}
}

// LogParse buffers the entry; nothing is written until Flush.
func (l *FileParseLogger) LogParse(entry ParseLog) error {
	l.runs = append(l.runs, entry)
	return nil
}

// Flush writes all buffered runs to the writer
func (l *FileParseLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"parse_session": map[string]any{
			"timestamp": time.Now(),
			"runs":      l.runs,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parse log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write parse log: %w", err)
	}

	l.runs = l.runs[:0]
	return nil
}

// NoOpParseLogger discards all entries
type NoOpParseLogger struct{}

func NewNoOpParseLogger() *NoOpParseLogger {
	return &NoOpParseLogger{}
}

func (nop *NoOpParseLogger) LogParse(entry ParseLog) error {
	return nil
}

// StdoutParseLogger writes each entry as a JSON line (for Lambda/CloudWatch)
type StdoutParseLogger struct {
	out io.Writer
}

func NewStdoutParseLogger() *StdoutParseLogger {
	return &StdoutParseLogger{out: os.Stdout}
}

func (l *StdoutParseLogger) LogParse(entry ParseLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}

// LoggedParser records every run of the wrapped parser to a ParseLogger.
type LoggedParser struct {
	parser  IngredientParser
	backend string
	logger  ParseLogger
}

func NewLoggedParser(parser IngredientParser, backend string, logger ParseLogger) *LoggedParser {
	return &LoggedParser{parser: parser, backend: backend, logger: logger}
}

func (p *LoggedParser) ParseContext(ctx context.Context, text string) (ingredient.List, error) {
	start := time.Now()
	list, err := p.parser.ParseContext(ctx, text)

	entry := ParseLog{
		Timestamp:   start,
		Backend:     p.backend,
		InputBytes:  len(text),
		Ingredients: list,
		Count:       len(list),
		DurationMs:  time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Error = err.Error()
		entry.ErrorType = grammar.ErrorType(err)
	}

	if logErr := p.logger.LogParse(entry); logErr != nil {
		return list, errors.Join(err, fmt.Errorf("failed to log parse run: %w", logErr))
	}
	return list, err
}
