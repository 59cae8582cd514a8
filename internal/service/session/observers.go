package session

import "github.com/vgcman16/CleanMate/internal/domain"

// ChangeType вид изменения состояния сессии
type ChangeType string

const (
	ChangeSignedIn       ChangeType = "signedIn"
	ChangeSignedOut      ChangeType = "signedOut"
	ChangeProfileUpdated ChangeType = "profileUpdated"
)

// Change уведомление наблюдателю. Profile пустой при выходе
type Change struct {
	Type    ChangeType
	UserID  string
	Profile *domain.UserProfile
}

// Subscribe регистрирует наблюдателя изменений сессий и профилей.
// Возвращает функцию отписки
func (s *Service) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// notify вызывается без удержания s.mu
func (s *Service) notify(change Change) {
	s.mu.Lock()
	subscribers := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		if change.Profile != nil {
			cp := cloneProfile(change.Profile)
			fn(Change{Type: change.Type, UserID: change.UserID, Profile: cp})
			continue
		}
		fn(change)
	}
}
