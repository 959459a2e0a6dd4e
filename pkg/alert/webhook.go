package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Notifier posts sweep outcomes to a Slack-compatible webhook.
type Notifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// payload is the minimal Slack-compatible message body.
type payload struct {
	Text string `json:"text"`
}

// NewNotifier creates a notifier for the given webhook URL. A
// non-positive timeout defaults to 10 seconds.
func NewNotifier(url string, timeout time.Duration, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "alert.webhook"),
	}
}

// Notify posts a message with a heading and body text. Delivery
// failures are returned but are expected to be treated as non-fatal by
// callers: a failed notification must never fail a sweep.
func (n *Notifier) Notify(ctx context.Context, heading, text string) error {
	body, err := json.Marshal(payload{Text: fmt.Sprintf("*%s*\n%s", heading, text)})
	if err != nil {
		return fmt.Errorf("failed to encode alert payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}
	n.logger.Debug("alert delivered", "heading", heading)
	return nil
}
