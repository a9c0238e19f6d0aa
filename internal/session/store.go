package session

import (
	"errors"
	"sync"
)

// ErrNoActiveSession возвращается, когда для пользователя нет начатой сессии.
var ErrNoActiveSession = errors.New("нет активной сессии")

// ErrTooManyImages возвращается при превышении лимита картинок в сессии.
var ErrTooManyImages = errors.New("слишком много картинок")

// Store — потокобезопасный реестр сессий: не более одной живой сессии на
// пользователя, все операции по одному userID линеаризуемы.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// CreateOrReplace начинает новую сессию для пользователя. Прежняя сессия,
// если была, отбрасывается вместе с её картинками: новый текст поста всегда
// перезапускает сценарий.
func (s *Store) CreateOrReplace(userID, postText string) {
	s.mu.Lock()
	s.sessions[userID] = &Session{UserID: userID, PostText: postText, Phase: PhaseAwaitingText}
	s.mu.Unlock()
}

// AppendAsset добавляет изображение в конец сессии и возвращает его порядковый
// номер. limit > 0 ограничивает количество картинок в сессии.
func (s *Store) AppendAsset(userID string, data []byte, mimeType string, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return 0, ErrNoActiveSession
	}
	if limit > 0 && len(sess.Images) >= limit {
		return 0, ErrTooManyImages
	}
	id := len(sess.Images)
	sess.Images = append(sess.Images, Asset{ID: id, Data: data, MimeType: mimeType})
	sess.Phase = PhaseCollectingImages
	return id, nil
}

// Has сообщает, есть ли у пользователя живая сессия.
func (s *Store) Has(userID string) bool {
	s.mu.Lock()
	_, ok := s.sessions[userID]
	s.mu.Unlock()
	return ok
}

// TakeForGeneration атомарно изымает сессию из реестра и возвращает её.
// Дальше сессией владеет только вызвавший: параллельный второй вызов для того
// же пользователя увидит ErrNoActiveSession, а не те же данные.
func (s *Store) TakeForGeneration(userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	delete(s.sessions, userID)
	sess.Phase = PhaseGenerating
	return sess, nil
}

// Discard удаляет сессию пользователя, если она есть. Повторный вызов безопасен.
func (s *Store) Discard(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Len — количество живых сессий.
func (s *Store) Len() int {
	s.mu.Lock()
	l := len(s.sessions)
	s.mu.Unlock()
	return l
}
