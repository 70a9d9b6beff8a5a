package deepseek

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/custodia-labs/blograg/internal/core/domain"
	"github.com/custodia-labs/blograg/internal/core/ports/driven"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("New without key = %v, want ErrConfiguration", err)
	}
}

func TestNewDefaults(t *testing.T) {
	s, err := New(Config{APIKey: "key"})
	if err != nil {
		t.Fatal(err)
	}
	if s.ModelName() != DefaultModel {
		t.Errorf("ModelName() = %q, want %q", s.ModelName(), DefaultModel)
	}
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["model"] != "deepseek-chat" {
			t.Errorf("model = %v", req["model"])
		}
		if req["temperature"] != 0.7 {
			t.Errorf("temperature = %v", req["temperature"])
		}
		if req["max_tokens"] != float64(8000) {
			t.Errorf("max_tokens = %v", req["max_tokens"])
		}

		fmt.Fprint(w, `{"choices":[{"message":{"content":"An answer."}}]}`)
	}))
	t.Cleanup(srv.Close)

	s, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	text, err := s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hello"},
	}, driven.ChatOptions{Temperature: 0.7, MaxTokens: 8000})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if text != "An answer." {
		t.Errorf("Chat = %q", text)
	}
}

func TestChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key","type":"auth_error"}}`)
	}))
	t.Cleanup(srv.Close)

	s, err := New(Config{APIKey: "bad-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "x"}}, driven.ChatOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error %v missing API detail", err)
	}
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	t.Cleanup(srv.Close)

	s, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "x"}}, driven.ChatOptions{})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}
