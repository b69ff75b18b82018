package pagination

import (
	"context"
	"sync"

	"wavebot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Manager tracks the live sessions and routes reaction events to them by
// anchor message id. Sessions unregister themselves when they terminate.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	wg       sync.WaitGroup
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Spawn registers the session and runs it in its own task. The session ends
// when its deadline elapses or ctx is cancelled, whichever comes first.
func (m *Manager) Spawn(ctx context.Context, s *Session) {
	m.mu.Lock()
	m.sessions[s.MessageID()] = s
	m.mu.Unlock()

	m.wg.Add(1)

	go func() {
		defer m.wg.Done()

		if err := s.Run(ctx); err != nil {
			log.Warn().Err(err).Int64("messageId", s.MessageID()).Msg("session ended with error")
		}

		m.mu.Lock()
		delete(m.sessions, s.MessageID())
		m.mu.Unlock()
	}()
}

// Dispatch routes one reaction event to the session anchored on its message,
// if any. Filtering by actor happens inside the session, not here; reactions
// from other users are visible to every subscriber of the anchor.
func (m *Manager) Dispatch(r domain.Reaction) {
	m.mu.Lock()
	s, ok := m.sessions[r.MessageID]
	m.mu.Unlock()

	if !ok {
		return
	}

	s.Offer(r)
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Wait blocks until every session has finished its cleanup. Meant to be
// called during shutdown after the shared context is cancelled.
func (m *Manager) Wait() {
	m.wg.Wait()
}
