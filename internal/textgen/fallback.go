package textgen

import (
	"context"
	"fmt"

	"blogforge/internal/post"
)

const fallbackTemplate = `## %[1]s

Сегодня поговорим о теме «%[1]s». Полная версия статьи появится позже —
генерация текста временно недоступна, поэтому этот выпуск собран локальным
шаблоном.

Тема «%[1]s» остаётся одной из заметных в мире ИИ и технологий. Следите за
обновлениями блога.`

// FallbackProvider produces a deterministic templated body mentioning the
// topic verbatim. It performs no I/O and never fails.
type FallbackProvider struct{}

func (FallbackProvider) Generate(_ context.Context, topic string) (post.Article, error) {
	return post.Article{
		Body:   fmt.Sprintf(fallbackTemplate, topic),
		Origin: post.TextFallback,
	}, nil
}
