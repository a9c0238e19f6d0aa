package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"EditorBot/internal/config"
	"EditorBot/internal/provider/factory"
	"EditorBot/internal/service/editor"
	"EditorBot/internal/service/image"
	"EditorBot/internal/session"

	"go.uber.org/zap"
)

// Разовый прогон редактора без чата: текст поста из файла, картинки из
// аргументов, результат в stdout. Удобно для проверки провайдера и промпта.
//
//	edit -post post.txt scan1.jpg scan2.png
func main() {
	postPath := flag.String("post", "", "файл с текстом поста")
	// config.NewConfig вызывает flag.Parse и разбирает и наши флаги тоже
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	if *postPath == "" {
		fmt.Fprintln(os.Stderr, "укажи файл с текстом поста: -post post.txt")
		os.Exit(2)
	}
	post, err := os.ReadFile(*postPath)
	if err != nil {
		sugar.Errorw("Не удалось прочитать текст поста", "path", *postPath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	adapter, err := factory.New(ctx, cfg)
	if err != nil {
		sugar.Errorw("failed to create provider adapter", "error", err)
		os.Exit(1)
	}

	normalizer := image.NewNormalizer(cfg.ImageMaxWidth, cfg.ImageMaxSizeBytes, cfg.ImageJPEGQuality)
	ed := editor.New(session.NewStore(), adapter, normalizer, cfg.MaxImages, sugar)

	const userID = "cli"
	sugar.Infow(ed.OnText(ctx, userID, string(post)))
	for _, path := range flag.Args() {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			sugar.Errorw("Не удалось прочитать картинку", "path", path, "error", rerr)
			os.Exit(1)
		}
		sugar.Infow(ed.OnImage(ctx, userID, data, http.DetectContentType(data)), "path", path)
	}

	fmt.Println(ed.OnGenerate(ctx, userID))
}
