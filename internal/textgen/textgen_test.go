package textgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"blogforge/internal/post"
)

func newProvider(t *testing.T, baseURL string, strict bool) *OpenAIProvider {
	t.Helper()
	return NewOpenAI(OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "gpt-4o-mini",
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
		Timeout:     5 * time.Second,
		Strict:      strict,
	})
}

func chatCompletionBody(content string) string {
	return fmt.Sprintf(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
}

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chatCompletionBody("Статья о нейросетях."))
	}))
	defer srv.Close()

	p := newProvider(t, srv.URL+"/v1", false)
	art, err := p.Generate(context.Background(), "Нейросети в медицине")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if art.Origin != post.TextRemote {
		t.Errorf("origin = %q, want remote", art.Origin)
	}
	if art.Body != "Статья о нейросетях." {
		t.Errorf("unexpected body %q", art.Body)
	}
}

func TestGenerateRetriesTransientThenFails(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer srv.Close()

	p := newProvider(t, srv.URL+"/v1", false)
	_, err := p.Generate(context.Background(), "topic")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := atomic.LoadInt64(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestGenerateDoesNotRetryAuthClass(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusTooManyRequests} {
		status := status
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			var calls int64
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt64(&calls, 1)
				w.WriteHeader(status)
				fmt.Fprint(w, `{"error":{"message":"denied","type":"invalid_request_error"}}`)
			}))
			defer srv.Close()

			p := newProvider(t, srv.URL+"/v1", false)
			_, err := p.Generate(context.Background(), "topic")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := atomic.LoadInt64(&calls); got != 1 {
				t.Fatalf("expected 1 attempt for status %d, got %d", status, got)
			}
		})
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"cmpl-1","object":"chat.completion","choices":[]}`)
	}))
	defer srv.Close()

	p := newProvider(t, srv.URL+"/v1", false)
	art, err := p.Generate(context.Background(), "topic")
	if err != nil {
		t.Fatalf("expected placeholder, got error: %v", err)
	}
	if art.Body != placeholderBody {
		t.Errorf("body = %q, want placeholder", art.Body)
	}

	strictP := newProvider(t, srv.URL+"/v1", true)
	if _, err := strictP.Generate(context.Background(), "topic"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("strict mode: expected ErrMalformed, got %v", err)
	}
}

func TestFallbackProviderDeterministic(t *testing.T) {
	topic := "Обзор новой архитектуры нейросети"
	var fp FallbackProvider
	a, err := fp.Generate(context.Background(), topic)
	if err != nil {
		t.Fatalf("fallback must never fail: %v", err)
	}
	b, _ := fp.Generate(context.Background(), topic)
	if a.Body != b.Body {
		t.Fatal("fallback body not deterministic")
	}
	if a.Body == "" || !strings.Contains(a.Body, topic) {
		t.Fatalf("fallback body must mention topic verbatim, got %q", a.Body)
	}
	if a.Origin != post.TextFallback {
		t.Errorf("origin = %q, want fallback", a.Origin)
	}
}

func TestSelectorFallsBackOnRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"denied","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	s := NewSelector(newProvider(t, srv.URL+"/v1", false))
	art, err := s.Generate(context.Background(), "ИИ и кибербезопасность")
	if err != nil {
		t.Fatalf("selector must never fail: %v", err)
	}
	if art.Origin != post.TextFallback {
		t.Errorf("origin = %q, want fallback", art.Origin)
	}
}

func TestSelectorWithoutRemote(t *testing.T) {
	s := NewSelector(nil)
	art, err := s.Generate(context.Background(), "topic")
	if err != nil {
		t.Fatalf("selector must never fail: %v", err)
	}
	if art.Origin != post.TextFallback {
		t.Errorf("origin = %q, want fallback", art.Origin)
	}
}
