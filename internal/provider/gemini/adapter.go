package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"EditorBot/internal/provider"
	"EditorBot/internal/session"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Adapter отправляет текст поста и картинки в Google Gemini.
// Картинки идут в запросе как inline-блобы.
type Adapter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ provider.Adapter = (*Adapter)(nil)

func New(ctx context.Context, apiKey, model string, timeout time.Duration) (*Adapter, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Adapter{client: gc, model: model, timeout: timeout}, nil
}

func (a *Adapter) Name() string { return "gemini" }

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{SupportsInlineImages: true}
}

// request — контент GenerateContent, собранный из сессии.
type request struct {
	contents []*genai.Content
}

func (a *Adapter) BuildRequest(postText string, images []session.Asset) (provider.Request, error) {
	prompt := provider.BuildPrompt(postText, provider.InlineImagesNote(len(images)))

	parts := make([]*genai.Part, 0, len(images)+1)
	parts = append(parts, &genai.Part{Text: prompt})
	for _, img := range images {
		mime := img.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: img.Data}})
	}

	return request{contents: []*genai.Content{{Role: "user", Parts: parts}}}, nil
}

func (a *Adapter) Send(ctx context.Context, req provider.Request) (provider.Reply, error) {
	r, ok := req.(request)
	if !ok {
		return nil, fmt.Errorf("gemini: неожиданный тип запроса %T", req)
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	resp, err := a.client.Models.GenerateContent(ctx, a.model, r.contents, nil)
	if err != nil {
		return nil, classify(err)
	}
	return resp, nil
}

func (a *Adapter) ParseResponse(rep provider.Reply) (string, error) {
	resp, ok := rep.(*genai.GenerateContentResponse)
	if !ok || resp == nil {
		return "", provider.Malformed("gemini: неожиданный тип ответа")
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", provider.Malformed("gemini: в ответе нет текста")
	}
	return text, nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return provider.Rejected(apiErr.Code, apiErr.Message, err)
	}
	return provider.Transport(err)
}
