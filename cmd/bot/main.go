package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"EditorBot/internal/adapter/chat/telegram"
	"EditorBot/internal/adapter/chat/twitch"
	"EditorBot/internal/config"
	"EditorBot/internal/provider/factory"
	"EditorBot/internal/service/editor"
	"EditorBot/internal/service/image"
	"EditorBot/internal/session"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()
	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	// Завершение по Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"Provider", cfg.Provider,
	)

	adapter, err := factory.New(ctx, cfg)
	if err != nil {
		sugar.Errorw("failed to create provider adapter", "error", err)
		return
	}

	if cfg.TelegramBotToken == "" {
		sugar.Errorw("TELEGRAM_BOT_TOKEN не задан; без него боту не к чему подключаться")
		return
	}

	normalizer := image.NewNormalizer(cfg.ImageMaxWidth, cfg.ImageMaxSizeBytes, cfg.ImageJPEGQuality)
	ed := editor.New(session.NewStore(), adapter, normalizer, cfg.MaxImages, sugar)

	// Опциональный второй фронтенд: текстовое редактирование из чата Twitch
	if cfg.TwitchUsername != "" && cfg.TwitchOAuthToken != "" && cfg.TwitchChannel != "" {
		go func() {
			tcfg := twitch.Config{
				Username: cfg.TwitchUsername,
				OAuth:    cfg.TwitchOAuthToken,
				Channel:  cfg.TwitchChannel,
			}
			if err := twitch.Run(ctx, sugar, tcfg, ed); err != nil && !errors.Is(err, context.Canceled) {
				sugar.Errorw("twitch adapter stopped", "error", err)
			}
		}()
	}

	tgCfg := telegram.Config{Token: cfg.TelegramBotToken, Debug: cfg.DebugMode}
	if err := telegram.Run(ctx, sugar, tgCfg, ed); err != nil && !errors.Is(err, context.Canceled) {
		sugar.Errorw("telegram adapter stopped", "error", err)
	}
	sugar.Infow("Stopped")
}
