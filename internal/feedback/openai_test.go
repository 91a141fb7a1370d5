package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestEvaluateUnconfigured(t *testing.T) {
	e := NewOpenAIEvaluator("", "", "gpt-4o-mini", time.Second)
	if _, err := e.Evaluate(context.Background(), "q", "a"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestEvaluateSubstitutesPlaceholder(t *testing.T) {
	var gotUserContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		for _, m := range req.Messages {
			if m.Role == "user" {
				gotUserContent = m.Content
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"**ok**"}}]}`))
	}))
	defer srv.Close()

	e := NewOpenAIEvaluator("test-key", srv.URL, "gpt-4o-mini", 5*time.Second)
	out, err := e.Evaluate(context.Background(), "What is a pointer?", "")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if out != "**ok**" {
		t.Errorf("feedback = %q", out)
	}
	if !strings.Contains(gotUserContent, "(No answer provided)") {
		t.Errorf("empty answer not substituted, user content = %q", gotUserContent)
	}
	if !strings.Contains(gotUserContent, "Question: What is a pointer?") {
		t.Errorf("question missing from prompt: %q", gotUserContent)
	}
}

func TestEvaluateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	e := NewOpenAIEvaluator("test-key", srv.URL, "gpt-4o-mini", 50*time.Millisecond)
	if _, err := e.Evaluate(context.Background(), "q", "a"); err == nil {
		t.Fatal("expected timeout error")
	}
}
