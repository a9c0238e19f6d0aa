package stub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"EditorBot/internal/provider"
	"EditorBot/internal/session"
)

// Adapter — заглушка без сетевых вызовов: возвращает заранее заданный ответ
// и считает обращения. Используется в тестах и для проверки связки без ключей.
type Adapter struct {
	ReplyText string        // ответ «модели»
	SendErr   error         // если задана — Send завершается этой ошибкой
	ParseErr  error         // если задана — ParseResponse завершается этой ошибкой
	Delay     time.Duration // имитация сетевой задержки в Send

	mu         sync.Mutex
	buildCalls int
	sendCalls  int
	lastReq    Request
}

var _ provider.Adapter = (*Adapter)(nil)

// Request — собранный заглушкой запрос; поля открыты для проверок в тестах.
type Request struct {
	Prompt string
	Images int
}

func New(reply string) *Adapter {
	if reply == "" {
		reply = "запрос получен"
	}
	return &Adapter{ReplyText: reply}
}

func (a *Adapter) Name() string { return "stub" }

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{SupportsInlineImages: false}
}

func (a *Adapter) BuildRequest(postText string, images []session.Asset) (provider.Request, error) {
	req := Request{
		Prompt: provider.BuildPrompt(postText, provider.ImagePlaceholders(len(images))),
		Images: len(images),
	}
	a.mu.Lock()
	a.buildCalls++
	a.lastReq = req
	a.mu.Unlock()
	return req, nil
}

func (a *Adapter) Send(ctx context.Context, req provider.Request) (provider.Reply, error) {
	a.mu.Lock()
	a.sendCalls++
	a.mu.Unlock()
	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay):
		case <-ctx.Done():
			return nil, provider.Transport(ctx.Err())
		}
	}
	if _, ok := req.(Request); !ok {
		return nil, fmt.Errorf("stub: неожиданный тип запроса %T", req)
	}
	if a.SendErr != nil {
		return nil, a.SendErr
	}
	return a.ReplyText, nil
}

func (a *Adapter) ParseResponse(rep provider.Reply) (string, error) {
	if a.ParseErr != nil {
		return "", a.ParseErr
	}
	text, ok := rep.(string)
	if !ok {
		return "", provider.Malformed("stub: неожиданный тип ответа")
	}
	return text, nil
}

// SendCalls — сколько раз вызывался Send.
func (a *Adapter) SendCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sendCalls
}

// BuildCalls — сколько раз вызывался BuildRequest.
func (a *Adapter) BuildCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buildCalls
}

// LastRequest — последний собранный запрос.
func (a *Adapter) LastRequest() Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastReq
}
