package messages

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie carrying the store key
const CookieName = "tcm_session"

type session struct {
	queue    *Queue
	lastSeen time.Time
}

// Store keeps one Queue per browser session in memory.
// Sessions idle for longer than the TTL are dropped by Reap.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Queue returns the queue for a session id, creating it on first use
func (s *Store) Queue(id string) *Queue {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{queue: &Queue{}}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess.queue
}

// lookup returns the queue of a known session and marks it seen
func (s *Store) lookup(id string) (*Queue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.queue, true
}

// pending returns a queue that joins the store under id when its first
// message is added. Requests that never queue anything leave no session.
func (s *Store) pending(id string) *Queue {
	return &Queue{onFirstAdd: func(q *Queue) { s.bind(id, q) }}
}

// bind stores q as the queue for id. Messages already held for id move
// ahead of q's own.
func (s *Store) bind(id string, q *Queue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok && sess.queue != q {
		q.prepend(sess.queue.Drain())
	}
	s.sessions[id] = &session{queue: q, lastSeen: s.now()}
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Reap drops idle sessions and returns how many were removed
func (s *Store) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run reaps idle sessions every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("messages: reap interval must be positive, got %v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Reap(); n > 0 {
				slog.Debug("reaped idle sessions", "count", n)
			}
		}
	}
}

// Middleware attaches the session's queue to every request, issuing a new
// session cookie when the request has none or an invalid one. A session is
// stored only once a message is queued for it.
func Middleware(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			q, ok := store.lookup(id)
			if !ok {
				q = store.pending(id)
			}
			ctx := NewContext(r.Context(), q)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
