package notify_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lyricdeck/internal/config"
	"lyricdeck/internal/notify"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func captureServer(t *testing.T, got *captured) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		got.title = r.Header.Get("Title")
		got.tags = r.Header.Get("Tags")
		got.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		got.body = string(body)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notify.NtfyTopic = ""

	svc := notify.NewService(&cfg)
	if err := svc.BatchCompleted(context.Background(), 3, 0, time.Minute); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := svc.BatchFailed(context.Background(), errors.New("boom")); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestBatchCompletedFormatsPayload(t *testing.T) {
	var got captured
	server := captureServer(t, &got)
	defer server.Close()

	cfg := config.Default()
	cfg.Notify.NtfyTopic = server.URL
	cfg.Notify.RequestTimeout = 5

	svc := notify.NewService(&cfg)
	if err := svc.BatchCompleted(context.Background(), 12, 0, 95*time.Second); err != nil {
		t.Fatalf("BatchCompleted: %v", err)
	}

	if got.title != "Lyricdeck - Batch Complete" {
		t.Fatalf("title = %q", got.title)
	}
	if got.body != "✅ Generated 12 decks in 1m35s" {
		t.Fatalf("body = %q", got.body)
	}
	if got.tags != "lyricdeck,batch,completed" {
		t.Fatalf("tags = %q", got.tags)
	}
	if got.priority != "" {
		t.Fatalf("priority = %q, want unset", got.priority)
	}
}

func TestBatchCompletedReportsFailures(t *testing.T) {
	var got captured
	server := captureServer(t, &got)
	defer server.Close()

	cfg := config.Default()
	cfg.Notify.NtfyTopic = server.URL

	svc := notify.NewService(&cfg)
	if err := svc.BatchCompleted(context.Background(), 2, 1, 10*time.Second); err != nil {
		t.Fatalf("BatchCompleted: %v", err)
	}

	if got.title != "Lyricdeck - Batch Complete (with errors)" {
		t.Fatalf("title = %q", got.title)
	}
	if got.body != "Batch complete: 2 succeeded, 1 failed in 10s" {
		t.Fatalf("body = %q", got.body)
	}
}

func TestBatchFailedUsesHighPriority(t *testing.T) {
	var got captured
	server := captureServer(t, &got)
	defer server.Close()

	cfg := config.Default()
	cfg.Notify.NtfyTopic = server.URL

	svc := notify.NewService(&cfg)
	if err := svc.BatchFailed(context.Background(), errors.New("output directory locked")); err != nil {
		t.Fatalf("BatchFailed: %v", err)
	}

	if got.title != "Lyricdeck - Error" {
		t.Fatalf("title = %q", got.title)
	}
	if got.body != "❌ Batch failed: output directory locked" {
		t.Fatalf("body = %q", got.body)
	}
	if got.priority != "high" {
		t.Fatalf("priority = %q, want high", got.priority)
	}
}

func TestSendSurfacesHTTPFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notify.NtfyTopic = server.URL

	svc := notify.NewService(&cfg)
	err := svc.BatchCompleted(context.Background(), 1, 0, time.Second)
	if err == nil {
		t.Fatalf("expected error for HTTP 429")
	}
}
