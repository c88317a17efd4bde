package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaz8081/padfeed/internal/clock"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestSource(t *testing.T, handler http.HandlerFunc) (*OpenAI, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/v1"
	cfg.APIKey = "sk-test"
	return NewOpenAI(cfg, clock.NewFake(t0)), &calls
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
	})
}

func TestFetchSendsChatCompletionRequest(t *testing.T) {
	var body map[string]any
	var path, auth, contentType string

	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeCompletion(w, "  Why did the chicken cross the road?\n")
	})

	item, err := src.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Why did the chicken cross the road?", item.Text)
	assert.Equal(t, t0, item.RequestedAt)

	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Contains(t, contentType, "application/json")

	assert.Equal(t, "deepseek-ai/DeepSeek-V3", body["model"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-6)
	assert.EqualValues(t, 150, body["max_tokens"])

	msgs, ok := body["messages"].([]any)
	require.True(t, ok, "messages should be an array")
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, DefaultPrompt, msg["content"])
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
			},
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"choices": [`))
			},
		},
		{
			name: "missing choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"cmpl-1"}`))
			},
		},
		{
			name: "blank content",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeCompletion(w, "   \n ")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := newTestSource(t, tt.handler)
			_, err := src.Fetch(context.Background())
			assert.ErrorIs(t, err, ErrFetch)
		})
	}
}

func TestFetchMissingAPIKeyMakesNoRequest(t *testing.T) {
	src, calls := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		writeCompletion(w, "unused")
	})
	src.config.APIKey = ""

	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Zero(t, *calls)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	src.config.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewOpenAIDefaultsTimeout(t *testing.T) {
	src := NewOpenAI(Config{APIKey: "k"}, clock.Real{})
	assert.Equal(t, 30*time.Second, src.config.Timeout)
}
