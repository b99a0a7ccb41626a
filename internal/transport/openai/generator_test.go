package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/domain"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	}
}

func TestGenerator_Generate(t *testing.T) {
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("classified output"))
	}))
	defer server.Close()

	gen := NewGenerator(&GeneratorConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Op:      "classify",
		Logger:  zap.NewNop(),
	})

	out, err := gen.Generate(context.Background(), "system prompt", "user prompt", 300)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "classified output" {
		t.Errorf("unexpected output: %q", out)
	}

	if gotReq.Model != "test-model" || gotReq.MaxTokens != 300 {
		t.Errorf("request not built as configured: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "system prompt" {
		t.Errorf("unexpected system message: %+v", gotReq.Messages[0])
	}
	if gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "user prompt" {
		t.Errorf("unexpected user message: %+v", gotReq.Messages[1])
	}
}

func TestGenerator_APIError_WrapsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "upstream overloaded", "type": "server_error"},
		})
	}))
	defer server.Close()

	gen := NewGenerator(&GeneratorConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Op:      "synthesize",
		Logger:  zap.NewNop(),
	})

	_, err := gen.Generate(context.Background(), "sys", "user", 600)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Errorf("expected ErrGenerationProviderError, got %v", err)
	}
}

func TestGenerator_EmptyChoices_WrapsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	gen := NewGenerator(&GeneratorConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Op:      "classify",
		Logger:  zap.NewNop(),
	})

	_, err := gen.Generate(context.Background(), "sys", "user", 300)
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Errorf("expected ErrGenerationProviderError, got %v", err)
	}
}
