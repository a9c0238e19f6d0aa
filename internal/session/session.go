package session

// Phase — этап жизненного цикла сессии редактирования.
type Phase int

const (
	// PhaseAwaitingText — сессия только что начата текстом поста.
	PhaseAwaitingText Phase = iota
	// PhaseCollectingImages — пользователь прислал хотя бы одну картинку.
	PhaseCollectingImages
	// PhaseGenerating — сессия изъята из реестра и отправляется провайдеру.
	PhaseGenerating
	// PhaseDone и PhaseFailed — терминальные: такая сессия в реестре уже не хранится.
	PhaseDone
	PhaseFailed
)

// Asset — одно изображение с правками. Неизменяемый после создания;
// ID равен порядковому номеру поступления (с нуля).
type Asset struct {
	ID       int
	Data     []byte
	MimeType string
}

// Session — накопленное состояние одного пользователя: текст поста и
// картинки с правками в порядке поступления.
type Session struct {
	UserID   string
	PostText string
	Images   []Asset
	Phase    Phase
}
