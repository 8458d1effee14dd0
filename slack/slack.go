package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"skillet/ingredient"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// PostIngredients posts list to channel, one bullet per ingredient in its
// canonical text form.
func (c *Client) PostIngredients(ctx context.Context, channel string, list ingredient.List) error {
	return c.PostMessage(ctx, channel, FormatIngredients(list))
}

// FormatIngredients renders list as a Slack mrkdwn message.
func FormatIngredients(list ingredient.List) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Ingredients* (%d)", len(list))
	for _, ing := range list {
		b.WriteString("\n• ")
		b.WriteString(ing.String())
	}
	return b.String()
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}
