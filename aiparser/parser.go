package aiparser

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"skillet/grammar"
	"skillet/ingredient"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseContext parses every non-blank line of text, one model call per line.
// The first failing line aborts the run. Text without any ingredient line
// yields grammar.ErrEmptyInput, as with the grammar parser.
func (c *Client) ParseContext(ctx context.Context, text string) (ingredient.List, error) {
	var list ingredient.List

	sc := bufio.NewScanner(strings.NewReader(lineBreaks.Replace(text)))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ing, err := c.ParseLine(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		list = append(list, ing)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}

	if len(list) == 0 {
		return nil, grammar.ErrEmptyInput
	}
	slog.Info("LLM_CLIENT: Parsed ingredients", "count", len(list))
	return list, nil
}
