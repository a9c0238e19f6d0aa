package config

import (
	"flag"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool   `env:"DEBUG_MODE"` // Режим дебага
	Provider  string `env:"PROVIDER"`   // LLM-бэкенд: openai|together|gemini|stub
	Model     string `env:"MODEL"`      // Переопределение модели провайдера; пусто — дефолт адаптера

	RequestTimeoutSeconds int `env:"REQUEST_TIMEOUT_SECONDS"` // Таймаут одного запроса к провайдеру, в секундах
	MaxImages             int `env:"MAX_IMAGES"`              // Максимум картинок в одной сессии, 0 — без ограничения

	// Ключи и токены. Ключ OpenAI SDK читает сам из OPENAI_API_KEY.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"` // Токен бота Telegram
	TogetherAPIKey   string `env:"TOGETHER_API_KEY"`   // Ключ Together AI
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`     // Ключ Google Gemini

	// Нормализация изображений перед отправкой провайдеру
	ImageMaxWidth     int `env:"IMAGE_MAX_WIDTH"`      // Максимальная ширина после пережатия
	ImageMaxSizeBytes int `env:"IMAGE_MAX_SIZE_BYTES"` // Максимальный размер JPEG после пережатия
	ImageJPEGQuality  int `env:"IMAGE_JPEG_QUALITY"`   // Качество JPEG 1-100

	// Chat / Twitch — опциональный второй фронтенд, только текст
	TwitchUsername   string `env:"TWITCH_USERNAME"`    // Имя пользователя Twitch (логин)
	TwitchOAuthToken string `env:"TWITCH_OAUTH_TOKEN"` // OAuth токен Twitch (может быть без префикса oauth:)
	TwitchChannel    string `env:"TWITCH_CHANNEL"`     // Канал Twitch (один), без #
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:             false,
		Provider:              "together",
		RequestTimeoutSeconds: 60,
		MaxImages:             0,
		ImageMaxWidth:         1280,
		ImageMaxSizeBytes:     1 * 1024 * 1024,
		ImageJPEGQuality:      80,
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага для отображения доп. инфы")
	flag.StringVar(&cfg.Provider, "provider", cfg.Provider, "LLM-бэкенд: openai|together|gemini|stub")
	flag.StringVar(&cfg.Model, "model", cfg.Model, "модель провайдера (пусто — дефолт адаптера)")
	flag.IntVar(&cfg.RequestTimeoutSeconds, "request-timeout-seconds", cfg.RequestTimeoutSeconds, "таймаут одного запроса к провайдеру в секундах")
	flag.IntVar(&cfg.MaxImages, "max-images", cfg.MaxImages, "максимум картинок в одной сессии, 0 — без ограничения")
	// Нормализация изображений
	flag.IntVar(&cfg.ImageMaxWidth, "image-max-width", cfg.ImageMaxWidth, "максимальная ширина картинки после пережатия")
	flag.IntVar(&cfg.ImageMaxSizeBytes, "image-max-size-bytes", cfg.ImageMaxSizeBytes, "максимальный размер JPEG после пережатия")
	flag.IntVar(&cfg.ImageJPEGQuality, "image-jpeg-quality", cfg.ImageJPEGQuality, "качество JPEG 1-100")
	// Chat/Twitch
	flag.StringVar(&cfg.TwitchUsername, "twitch-username", cfg.TwitchUsername, "логин Twitch для подключения к чату")
	flag.StringVar(&cfg.TwitchOAuthToken, "twitch-oauth-token", cfg.TwitchOAuthToken, "OAuth токен Twitch (может быть без префикса oauth:)")
	flag.StringVar(&cfg.TwitchChannel, "twitch-channel", cfg.TwitchChannel, "канал Twitch (без #)")
	flag.Parse()

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	return cfg
}
