package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"EditorBot/internal/service/editor"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Config хранит параметры подключения к Telegram Bot API.
type Config struct {
	Token string
	Debug bool
}

// handler маршрутизирует сообщения Telegram в редактор. Скачивание файлов и
// отправка ответов вынесены в функции, чтобы маршрутизацию можно было
// проверять без Bot API.
type handler struct {
	logger   *zap.SugaredLogger
	ed       *editor.Editor
	download func(ctx context.Context, fileID string) ([]byte, string, error)
	send     func(chatID int64, text string)
}

// Run запускает long polling и маршрутизирует апдейты в редактор.
// Апдейты обрабатываются последовательно, поэтому порядок картинок в сессии
// равен порядку их отправки пользователем; в отдельную горутину уходит только
// генерация, чтобы чей-то долгий запрос к провайдеру не блокировал остальных.
// Функция завершается по отмене ctx.
func Run(ctx context.Context, logger *zap.SugaredLogger, cfg Config, ed *editor.Editor) error {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	bot.Debug = cfg.Debug
	logger.Infow("Telegram connected", "account", bot.Self.UserName)

	h := &handler{
		logger: logger,
		ed:     ed,
		download: func(ctx context.Context, fileID string) ([]byte, string, error) {
			return downloadFile(ctx, bot, fileID)
		},
		send: func(chatID int64, text string) {
			if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
				logger.Errorw("Не удалось отправить ответ", "chat", chatID, "error", err)
			}
		},
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil || upd.Message.From == nil || upd.Message.Chat == nil {
				continue
			}
			h.handle(ctx, upd.Message)
		}
	}
}

func (h *handler) handle(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		h.send(chatID, h.ed.StartMessage())
	case msg.IsCommand() && msg.Command() == "generate":
		// Генерация может занять десятки секунд — не держим цикл опроса
		go func() {
			h.send(chatID, h.ed.OnGenerate(ctx, userID))
		}()
	case msg.IsCommand():
		// незнакомые команды игнорируем
	case len(msg.Photo) > 0:
		best := msg.Photo[len(msg.Photo)-1] // Telegram присылает размеры по возрастанию
		data, mime, err := h.download(ctx, best.FileID)
		if err != nil {
			h.logger.Errorw("Не удалось скачать фото", "user", userID, "error", err)
			h.send(chatID, "Не удалось скачать картинку, попробуй ещё раз.")
			return
		}
		h.send(chatID, h.ed.OnImage(ctx, userID, data, mime))
	case msg.Text != "":
		h.send(chatID, h.ed.OnText(ctx, userID, msg.Text))
	}
}

// downloadFile скачивает файл Telegram по fileID и возвращает его байты и MIME-тип.
func downloadFile(ctx context.Context, bot *tgbotapi.BotAPI, fileID string) ([]byte, string, error) {
	url, err := bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("telegram file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/jpeg"
	}
	return data, mime, nil
}
