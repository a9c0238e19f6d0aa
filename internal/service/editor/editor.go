package editor

import (
	"context"
	"errors"
	"fmt"

	"EditorBot/internal/provider"
	"EditorBot/internal/service/image"
	"EditorBot/internal/session"

	"go.uber.org/zap"
)

// Ответы пользователю. Формулировки совпадают с репликами исходного бота.
const (
	MsgStart      = "Привет! Пришли текст поста первым сообщением, а потом изображения с правками. Когда будешь готов — отправь команду /generate для запуска обработки."
	MsgTextSaved  = "Текст поста сохранён. Жду скрины с правками."
	MsgImageSaved = "Картинка сохранена."
	MsgNeedText   = "Сначала пришли текст поста."
	MsgNothing    = "Нет текста и скриншотов."
	MsgBadImage   = "Не удалось обработать картинку. Пришли изображение в формате JPEG или PNG."
)

// Editor — конечный автомат редактирования: копит текст поста и картинки по
// пользователям и по команде генерации собирает из них один запрос к
// LLM-провайдеру. Новый текст всегда перезапускает сессию; генерация — успешная
// или нет — всегда её уничтожает.
type Editor struct {
	store      *session.Store
	adapter    provider.Adapter
	normalizer *image.Normalizer // nil — картинки передаются как есть
	maxImages  int
	logger     *zap.SugaredLogger
}

// New создаёт оркестратор. maxImages ограничивает количество картинок в сессии;
// лимит самого провайдера, если он жёстче, имеет приоритет.
func New(store *session.Store, adapter provider.Adapter, normalizer *image.Normalizer, maxImages int, logger *zap.SugaredLogger) *Editor {
	if capMax := adapter.Capabilities().MaxImages; capMax > 0 && (maxImages <= 0 || capMax < maxImages) {
		maxImages = capMax
	}
	return &Editor{
		store:      store,
		adapter:    adapter,
		normalizer: normalizer,
		maxImages:  maxImages,
		logger:     logger,
	}
}

// StartMessage — приветствие для команды /start.
func (e *Editor) StartMessage() string { return MsgStart }

// OnText начинает новую сессию, молча отбрасывая прежнюю (поведение исходного
// бота: каждый текст — начало сценария заново).
func (e *Editor) OnText(_ context.Context, userID, text string) string {
	e.store.CreateOrReplace(userID, text)
	e.logger.Infow("Текст поста сохранён", "user", userID, "len", len(text))
	return MsgTextSaved
}

// OnImage добавляет картинку в текущую сессию пользователя.
func (e *Editor) OnImage(_ context.Context, userID string, data []byte, mimeType string) string {
	// Предусловие «сначала текст» проверяется до нормализации: без сессии
	// картинку даже не декодируем
	if !e.store.Has(userID) {
		e.logger.Infow("Картинка без активной сессии", "user", userID)
		return MsgNeedText
	}

	if e.normalizer != nil {
		norm, mime, err := e.normalizer.Normalize(data)
		if err != nil {
			e.logger.Warnw("Картинка не распознана", "user", userID, "error", err)
			return MsgBadImage
		}
		data, mimeType = norm, mime
	}

	id, err := e.store.AppendAsset(userID, data, mimeType, e.maxImages)
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		e.logger.Infow("Картинка без активной сессии", "user", userID)
		return MsgNeedText
	case errors.Is(err, session.ErrTooManyImages):
		e.logger.Infow("Превышен лимит картинок", "user", userID, "limit", e.maxImages)
		return fmt.Sprintf("Слишком много картинок: максимум %d.", e.maxImages)
	}
	e.logger.Infow("Картинка сохранена", "user", userID, "asset", id, "bytes", len(data))
	return MsgImageSaved
}

// OnGenerate изымает сессию и выполняет генерацию. Сессия уничтожается на
// любом исходе: ретрая нет, для повтора пользователь присылает всё заново.
func (e *Editor) OnGenerate(ctx context.Context, userID string) string {
	sess, err := e.store.TakeForGeneration(userID)
	if err != nil {
		e.logger.Infow("Генерация без активной сессии", "user", userID)
		return MsgNothing
	}
	e.logger.Infow("Генерация", "user", userID, "provider", e.adapter.Name(), "images", len(sess.Images))

	req, err := e.adapter.BuildRequest(sess.PostText, sess.Images)
	if err != nil {
		sess.Phase = session.PhaseFailed
		return e.failure(userID, err)
	}

	rep, err := e.adapter.Send(ctx, req)
	if err != nil {
		sess.Phase = session.PhaseFailed
		return e.failure(userID, err)
	}

	text, err := e.adapter.ParseResponse(rep)
	if err != nil {
		sess.Phase = session.PhaseFailed
		return e.failure(userID, err)
	}

	sess.Phase = session.PhaseDone
	e.logger.Infow("Генерация завершена", "user", userID, "len", len(text))
	return text
}

// failure переводит ошибку провайдера в сообщение пользователю. Kind в логе
// отличает отказ провайдера от нечитаемого ответа.
func (e *Editor) failure(userID string, err error) string {
	var perr *provider.Error
	if errors.As(err, &perr) {
		e.logger.Errorw("Ошибка провайдера", "user", userID, "kind", string(perr.Kind), "error", err)
	} else {
		e.logger.Errorw("Ошибка генерации", "user", userID, "error", err)
	}
	return fmt.Sprintf("Ошибка при обращении к API %s:\n%s", e.adapter.Name(), err.Error())
}
