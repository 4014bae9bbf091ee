package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yungbote/lecturemate-backend/internal/logger"
	"github.com/yungbote/lecturemate-backend/internal/pkg/httpx"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_BASE_URL", baseURL)
	c, err := NewClient(testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewClient(testLogger()); err == nil {
		t.Fatal("expected an error without GEMINI_API_KEY")
	}
}

func TestGenerateJSONRequestShape(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header=%q", got)
		}
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("path=%q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("request not JSON: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"ok\":true}"}]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GenerateJSON(context.Background(), "system policy", "user content", map[string]any{"type": "OBJECT"})
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("text=%q", got)
	}

	cfg, _ := captured["generationConfig"].(map[string]any)
	if cfg["responseMimeType"] != "application/json" {
		t.Fatalf("responseMimeType=%v", cfg["responseMimeType"])
	}
	if _, ok := cfg["responseSchema"]; !ok {
		t.Fatal("responseSchema not sent")
	}
	if _, ok := captured["system_instruction"]; !ok {
		t.Fatal("system_instruction not sent")
	}
}

func TestGenerateGroundedSendsSearchTool(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"grounded"}]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GenerateGrounded(context.Background(), "sys", "user"); err != nil {
		t.Fatalf("GenerateGrounded: %v", err)
	}
	tools, ok := captured["tools"].([]any)
	if !ok || len(tools) != 1 {
		t.Fatalf("tools=%v", captured["tools"])
	}
	tool, _ := tools[0].(map[string]any)
	if _, ok := tool["google_search"]; !ok {
		t.Fatalf("tool=%v", tool)
	}
}

func TestGenerateTextMultiPartConcatenation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GenerateText(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("text=%q", got)
	}
}

func TestProviderErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateText(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("expected an error")
	}
	if httpx.StatusCode(err) != http.StatusTooManyRequests {
		t.Fatalf("status=%d, want 429", httpx.StatusCode(err))
	}
	// The provider message rides along unchanged.
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("provider message lost: %v", err)
	}
}

func TestGenerateSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash-preview-tts") {
			t.Errorf("speech call hit %q", r.URL.Path)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/pcm","data":"UklGRg=="}}]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	audio, err := c.GenerateSpeech(context.Background(), "say this")
	if err != nil {
		t.Fatalf("GenerateSpeech: %v", err)
	}
	if audio.Base64Data != "UklGRg==" || audio.MimeType != "audio/pcm" {
		t.Fatalf("audio=%+v", audio)
	}
}

func TestGenerateSpeechNoAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not audio"}]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GenerateSpeech(context.Background(), "say this"); err == nil {
		t.Fatal("expected an error when no audio part is returned")
	}
}

func TestNewClientTimeoutFromEnv(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantSec int
	}{
		{name: "set", value: "30", wantSec: 30},
		{name: "unparseable", value: "soon", wantSec: 180},
		{name: "non_positive", value: "-5", wantSec: 180},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "test-key")
			t.Setenv("GEMINI_TIMEOUT_SECONDS", tc.value)
			got, err := NewClient(testLogger())
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			c := got.(*client)
			if want := time.Duration(tc.wantSec) * time.Second; c.httpClient.Timeout != want {
				t.Fatalf("timeout=%v, want %v", c.httpClient.Timeout, want)
			}
		})
	}
}
