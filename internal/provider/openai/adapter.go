package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"EditorBot/internal/provider"
	"EditorBot/internal/session"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
)

// Adapter отправляет текст поста и картинки в OpenAI Responses API.
// Каждая картинка вкладывается в запрос как base64 data URL.
type Adapter struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

var _ provider.Adapter = (*Adapter)(nil)

// New создаёт адаптер OpenAI. Ключ SDK берёт из окружения (OPENAI_API_KEY).
func New(model string, timeout time.Duration) *Adapter {
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Adapter{client: openai.NewClient(), model: model, timeout: timeout}
}

func (a *Adapter) Name() string { return "openai" }

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{SupportsInlineImages: true}
}

// request — параметры Responses API, собранные из сессии.
type request struct {
	params responses.ResponseNewParams
}

func (a *Adapter) BuildRequest(postText string, images []session.Asset) (provider.Request, error) {
	prompt := provider.BuildPrompt(postText, provider.InlineImagesNote(len(images)))

	// Контент одного пользовательского сообщения: инструкция, затем изображения
	content := make(responses.ResponseInputMessageContentListParam, 0, len(images)+1)
	content = append(content, responses.ResponseInputContentParamOfInputText(prompt))
	for _, img := range images {
		imageParam := responses.ResponseInputContentParamOfInputImage(responses.ResponseInputImageDetailAuto)
		imageParam.OfInputImage.ImageURL = openai.String(makeImageDataURL(img))
		content = append(content, imageParam)
	}

	return request{params: responses.ResponseNewParams{
		Model: openai.ChatModel(a.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRoleUser),
			},
		},
	}}, nil
}

func (a *Adapter) Send(ctx context.Context, req provider.Request) (provider.Reply, error) {
	r, ok := req.(request)
	if !ok {
		return nil, fmt.Errorf("openai: неожиданный тип запроса %T", req)
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	resp, err := a.client.Responses.New(ctx, r.params)
	if err != nil {
		return nil, classify(err)
	}
	return resp, nil
}

func (a *Adapter) ParseResponse(rep provider.Reply) (string, error) {
	resp, ok := rep.(*responses.Response)
	if !ok || resp == nil {
		return "", provider.Malformed("openai: неожиданный тип ответа")
	}
	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", provider.Malformed("openai: в ответе нет текста")
	}
	return text, nil
}

func makeImageDataURL(img session.Asset) string {
	contentType := img.MimeType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(img.Data))
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return provider.Rejected(apiErr.StatusCode, apiErr.Message, err)
	}
	return provider.Transport(err)
}
