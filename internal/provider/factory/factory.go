package factory

import (
	"context"
	"fmt"
	"time"

	"EditorBot/internal/config"
	"EditorBot/internal/provider"
	"EditorBot/internal/provider/gemini"
	"EditorBot/internal/provider/openai"
	"EditorBot/internal/provider/stub"
	"EditorBot/internal/provider/together"
)

// New создаёт адаптер LLM-бэкенда по имени провайдера из конфигурации.
func New(ctx context.Context, cfg *config.Config) (provider.Adapter, error) {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	switch cfg.Provider {
	case "openai":
		return openai.New(cfg.Model, timeout), nil
	case "together":
		return together.New(cfg.TogetherAPIKey, cfg.Model, timeout), nil
	case "gemini":
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.Model, timeout)
	case "stub":
		return stub.New(""), nil
	default:
		return nil, fmt.Errorf("неизвестный провайдер: %q", cfg.Provider)
	}
}
