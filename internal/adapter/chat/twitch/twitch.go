package twitch

import (
	"context"
	"strings"
	"time"

	"EditorBot/internal/service/editor"

	twitchirc "github.com/gempir/go-twitch-irc/v4"
	"go.uber.org/zap"
)

// Config хранит параметры подключения к Twitch IRC.
type Config struct {
	Username string
	OAuth    string // может быть с/без префикса oauth:
	Channel  string // без #, регистр не важен
}

// Run запускает клиент Twitch IRC как второй, чисто текстовый фронтенд
// редактора: `!post <текст>` начинает сессию, `!generate` запускает обработку.
// Картинки через Twitch не принимаются — генерация идёт по одному тексту.
// Базовые реконнекты обеспечиваются клиентом; функция завершается по отмене ctx.
func Run(ctx context.Context, logger *zap.SugaredLogger, cfg Config, ed *editor.Editor) error {
	username := strings.ToLower(strings.TrimSpace(cfg.Username))
	token := strings.TrimSpace(cfg.OAuth)
	channel := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(cfg.Channel), "#"))
	if username == "" || token == "" || channel == "" {
		logger.Warnw("Twitch chat not configured: missing env", "username", username != "", "token", token != "", "channel", channel != "")
		return nil
	}
	if !strings.HasPrefix(token, "oauth:") {
		token = "oauth:" + token
	}

	client := twitchirc.NewClient(username, token)

	client.OnConnect(func() {
		logger.Infow("Twitch connected", "as", username, "join", channel)
		client.Join(channel)
	})

	client.OnPrivateMessage(func(msg twitchirc.PrivateMessage) {
		user := strings.TrimSpace(msg.User.Name)
		text := strings.TrimSpace(msg.Message)
		if user == "" || text == "" {
			return
		}
		// Свой userID-неймспейс, чтобы не пересекаться с Telegram
		userID := "twitch:" + user

		switch {
		case text == "!generate":
			// Генерация может занять десятки секунд — не держим IRC-колбэк
			go func() {
				reply := ed.OnGenerate(ctx, userID)
				say(client, channel, user, reply)
			}()
		case strings.HasPrefix(text, "!post "):
			post := strings.TrimSpace(strings.TrimPrefix(text, "!post "))
			if post == "" {
				return
			}
			say(client, channel, user, ed.OnText(ctx, userID, post))
		}
	})

	errCh := make(chan error, 1)
	go func() { errCh <- client.Connect() }()

	select {
	case <-ctx.Done():
		_ = client.Disconnect()
		// Подождём чуть-чуть корректного завершения
		select {
		case <-errCh:
		case <-time.After(2 * time.Second):
		}
		return context.Canceled
	case err := <-errCh:
		if err != nil {
			logger.Errorw("twitch connect error", "error", err)
		}
		return err
	}
}

// say отвечает пользователю в канал; переводы строк IRC не переживают.
func say(client *twitchirc.Client, channel, user, reply string) {
	if reply == "" {
		return
	}
	reply = strings.ReplaceAll(reply, "\n", " ")
	client.Say(channel, "@"+user+" "+reply)
}
