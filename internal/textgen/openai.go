package textgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blogforge/internal/post"
	"blogforge/internal/retry"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "Ты пишешь статьи для блога про ИИ и технологии. Стиль — обзор, урок или мастер-класс."

// placeholderBody is returned for a structurally invalid success response when
// the provider is not configured to propagate the failure.
const placeholderBody = "Ошибка генерации статьи."

// OpenAIConfig configures the remote provider. BaseURL allows any
// OpenAI-compatible endpoint (OpenRouter by default).
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
	// Strict propagates malformed responses instead of substituting the
	// placeholder body.
	Strict bool
}

// OpenAIProvider implements Provider against a chat-completions API with a
// bounded retry policy for transient transport failures.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	strict  bool
	policy  retry.Policy
}

// NewOpenAI builds the remote provider. The model must be set by config
// defaults before this is called.
func NewOpenAI(cfg OpenAIConfig) *OpenAIProvider {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		panic("textgen: model must be specified")
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 2 * time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(cc),
		model:   model,
		timeout: timeout,
		strict:  cfg.Strict,
		policy: retry.Policy{
			MaxAttempts: attempts,
			BaseDelay:   backoff,
			MaxDelay:    time.Minute,
			Retryable:   IsRetryable,
		},
	}
}

// Generate asks the collaborator for a blog article on topic. Transient
// failures are retried with exponential backoff; auth/billing/rate-limit
// statuses short-circuit immediately.
func (o *OpenAIProvider) Generate(ctx context.Context, topic string) (post.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var body string
	err := o.policy.Do(ctx, func(ctx context.Context) error {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Напиши статью на тему: %s", topic)},
			},
		})
		if err != nil {
			return classify(err)
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return ErrMalformed
		}
		body = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrMalformed) && !o.strict {
			slog.Warn("textgen: malformed response, using placeholder body", "topic", topic)
			return post.Article{Body: placeholderBody, Origin: post.TextRemote}, nil
		}
		return post.Article{}, err
	}
	return post.Article{Body: body, Origin: post.TextRemote}, nil
}
