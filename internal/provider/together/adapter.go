package together

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"EditorBot/internal/provider"
	"EditorBot/internal/session"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultBaseURL = "https://api.together.xyz/v1"
	defaultModel   = "meta-llama/Llama-4-Maverick-17B-128E-Instruct-FP8"
)

// Adapter отправляет запросы в Together AI через OpenAI-совместимый
// chat completions API. Изображения в запрос не вкладываются: каждая картинка
// описывается текстовой строкой-заглушкой.
type Adapter struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

var _ provider.Adapter = (*Adapter)(nil)

func New(apiKey, model string, timeout time.Duration) *Adapter {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Adapter{
		client:  openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(defaultBaseURL)),
		model:   model,
		timeout: timeout,
	}
}

func (a *Adapter) Name() string { return "together" }

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{SupportsInlineImages: false}
}

// request — параметры chat completions, собранные из сессии.
type request struct {
	params openai.ChatCompletionNewParams
}

func (a *Adapter) BuildRequest(postText string, images []session.Asset) (provider.Request, error) {
	prompt := provider.BuildPrompt(postText, provider.ImagePlaceholders(len(images)))
	return request{params: openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}}, nil
}

func (a *Adapter) Send(ctx context.Context, req provider.Request) (provider.Reply, error) {
	r, ok := req.(request)
	if !ok {
		return nil, fmt.Errorf("together: неожиданный тип запроса %T", req)
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	resp, err := a.client.Chat.Completions.New(ctx, r.params)
	if err != nil {
		return nil, classify(err)
	}
	return resp, nil
}

func (a *Adapter) ParseResponse(rep provider.Reply) (string, error) {
	resp, ok := rep.(*openai.ChatCompletion)
	if !ok || resp == nil {
		return "", provider.Malformed("together: неожиданный тип ответа")
	}
	if len(resp.Choices) == 0 {
		return "", provider.Malformed("together: пустой список choices")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", provider.Malformed("together: пустой ответ модели")
	}
	return content, nil
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return provider.Rejected(apiErr.StatusCode, apiErr.Message, err)
	}
	return provider.Transport(err)
}
