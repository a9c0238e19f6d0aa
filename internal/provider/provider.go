package provider

import (
	"context"

	"EditorBot/internal/session"
)

// Capabilities описывает возможности конкретного LLM-бэкенда.
type Capabilities struct {
	// SupportsInlineImages — умеет ли бэкенд принимать изображения в самом
	// запросе. Если нет, картинки описываются текстовыми строками-заглушками.
	SupportsInlineImages bool
	// MaxImages — жёсткий лимит картинок на запрос, 0 — без ограничения.
	MaxImages int
}

// Request и Reply — провайдер-специфичные значения. Оркестратор их не
// интерпретирует и только передаёт между методами одного адаптера.
type (
	Request any
	Reply   any
)

// Adapter — единый контракт для всех LLM-бэкендов. Все реализации должны быть
// взаимозаменяемыми.
type Adapter interface {
	Name() string
	Capabilities() Capabilities
	// BuildRequest — чистая функция: собирает провайдер-специфичный запрос
	// из текста поста и картинок, без побочных эффектов.
	BuildRequest(postText string, images []session.Asset) (Request, error)
	// Send выполняет сетевой вызов. Время ожидания ограничено таймаутом
	// адаптера; любая ошибка транспорта или неуспешный статус — *Error.
	Send(ctx context.Context, req Request) (Reply, error)
	// ParseResponse извлекает итоговый текст из ответа провайдера.
	ParseResponse(rep Reply) (string, error)
}
