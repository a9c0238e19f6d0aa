package provider

import "fmt"

// ErrorKind классифицирует ошибки обращения к LLM-бэкенду.
type ErrorKind string

const (
	// KindTransport — сеть/таймаут: до провайдера не достучались.
	KindTransport ErrorKind = "transport"
	// KindRejected — провайдер ответил неуспешным статусом (авторизация, квота и т.п.).
	KindRejected ErrorKind = "rejected"
	// KindMalformedReply — успешный ответ, из которого не извлечь текст.
	KindMalformedReply ErrorKind = "malformed_reply"
)

// Error — ошибка провайдера с человекочитаемой причиной. Ключи и токены в
// Message не попадают: туда идёт только текст ошибки SDK или статус.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP-статус для KindRejected, иначе 0
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.wrapped)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.wrapped }

// Transport оборачивает сетевую ошибку или таймаут.
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Message: "сетевая ошибка", wrapped: err}
}

// Rejected строит ошибку по неуспешному ответу провайдера.
func Rejected(status int, message string, err error) *Error {
	return &Error{Kind: KindRejected, Status: status, Message: fmt.Sprintf("провайдер отклонил запрос (статус %d): %s", status, message), wrapped: err}
}

// Malformed — успешный ответ без извлекаемого текста.
func Malformed(message string) *Error {
	return &Error{Kind: KindMalformedReply, Message: message}
}
