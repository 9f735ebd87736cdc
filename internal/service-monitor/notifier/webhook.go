package notifier

import (
	"Service_Monitor/internal/service-monitor/alert"
	apperrors "Service_Monitor/internal/service-monitor/errors"
	"Service_Monitor/internal/service-monitor/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type webhookNotifier struct {
	url    string
	client *http.Client
}

func (w *webhookNotifier) Name() string {
	return "webhook"
}

// Send posts the rendered message and the raw alert fields. Without a URL it does nothing.
func (w *webhookNotifier) Send(ctx context.Context, event model.AlertEvent) error {
	if w.url == "" {
		return nil
	}
	payload := event.Fields()
	payload["text"] = alert.FormatMessage(event)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("webhookNotifier.Send encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, &buf)
	if err != nil {
		return fmt.Errorf("webhookNotifier.Send creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhookNotifier.Send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhookNotifier.Send: %w", apperrors.NewWebhookError(resp.StatusCode, string(body)))
	}
	return nil
}

func NewWebhookNotifier(url string, client *http.Client) Notifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &webhookNotifier{
		url:    url,
		client: client,
	}
}
