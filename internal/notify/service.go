package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lyricdeck/internal/config"
)

const userAgent = "Lyricdeck-Go/0.1.0"

// Service is the notification surface exposed to the batch orchestrator.
type Service interface {
	BatchCompleted(ctx context.Context, processed, failed int, took time.Duration) error
	BatchFailed(ctx context.Context, err error) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notify.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notify.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) BatchCompleted(ctx context.Context, processed, failed int, took time.Duration) error {
	took = took.Round(time.Second)
	if took < 0 {
		took = 0
	}
	tookText := took.String()
	if took == 0 {
		tookText = "0s"
	}

	var title string
	var message string
	if failed == 0 {
		title = "Lyricdeck - Batch Complete"
		message = fmt.Sprintf("✅ Generated %d decks in %s", processed, tookText)
	} else {
		title = "Lyricdeck - Batch Complete (with errors)"
		message = fmt.Sprintf("Batch complete: %d succeeded, %d failed in %s", processed, failed, tookText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"lyricdeck", "batch", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) BatchFailed(ctx context.Context, err error) error {
	message := "❌ Batch failed: unknown"
	if err != nil {
		message = fmt.Sprintf("❌ Batch failed: %s", strings.TrimSpace(err.Error()))
	}

	data := payload{
		title:    "Lyricdeck - Error",
		message:  message,
		tags:     []string{"lyricdeck", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) BatchCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) BatchFailed(context.Context, error) error                     { return nil }
