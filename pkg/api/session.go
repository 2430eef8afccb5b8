package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"

	"campus_paths/pkg/geo"
	"campus_paths/pkg/pathservice"
	"campus_paths/pkg/render"
	"campus_paths/pkg/selection"
)

const sessionCookie = "campus_session"

// Session is one browser's campus paths view: a selection controller and
// the map container it notifies.
type Session struct {
	ID   string
	Ctrl *selection.Controller
	View *render.Container

	mu     sync.Mutex
	notice string

	closeOnce sync.Once
}

// close tears the session's controller down and counts it once.
func (s *Session) close(m *Metrics) {
	s.closeOnce.Do(func() {
		s.Ctrl.Close()
		m.sessionClosed()
	})
}

// TakeNotice returns the pending user notification, if any, and clears it.
func (s *Session) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = ""
	return n
}

func (s *Session) setNotice(msg string, err error) {
	log.Printf("session %s: %s: %v", s.ID, msg, err)
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

// SessionConfig bounds the session store.
type SessionConfig struct {
	MaxSessions int
	IdleTTL     time.Duration
	LoadTimeout time.Duration // catalog load on session creation
}

// DefaultSessionConfig returns sensible defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxSessions: 10_000,
		IdleTTL:     30 * time.Minute,
		LoadTimeout: 5 * time.Second,
	}
}

// Sessions keeps the live sessions in an LRU cache. Evicted sessions are
// closed, so lookups still in flight for them are dropped.
type Sessions struct {
	svc     pathservice.Service
	proj    geo.Projection
	cfg     SessionConfig
	metrics *Metrics

	// mu orders lookups against inserts, so a lookup's touch cannot
	// re-insert a session that an insert just evicted.
	mu    sync.Mutex
	cache gcache.Cache
}

// NewSessions creates a session store whose controllers talk to svc and
// whose maps draw with proj.
func NewSessions(svc pathservice.Service, proj geo.Projection, cfg SessionConfig, metrics *Metrics) *Sessions {
	s := &Sessions{svc: svc, proj: proj, cfg: cfg, metrics: metrics}
	b := gcache.New(cfg.MaxSessions).LRU().
		EvictedFunc(func(_, value interface{}) {
			value.(*Session).close(metrics)
		})
	if cfg.IdleTTL > 0 {
		b = b.Expiration(cfg.IdleTTL)
	}
	s.cache = b.Build()
	return s
}

// Projection returns the projection session maps are drawn with.
func (s *Sessions) Projection() geo.Projection {
	return s.proj
}

// Get returns the live session with the given id. A closed session is a
// miss and is dropped from the store.
func (s *Sessions) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.cache.Get(id)
	if err != nil {
		return nil, false
	}
	sess := v.(*Session)
	if sess.Ctrl.Closed() {
		s.cache.Remove(id)
		return nil, false
	}
	// Touch to extend the idle expiration.
	_ = s.cache.Set(id, sess)
	return sess, true
}

// Create starts a new session and loads its building catalog once. A
// failed load leaves the catalog empty and a notice pending.
func (s *Sessions) Create(ctx context.Context) *Session {
	sess := &Session{
		ID:   uuid.NewString(),
		View: render.NewContainer(s.proj),
	}
	sess.Ctrl = selection.New(s.svc, sess.View.Update, sess.setNotice)

	loadCtx, cancel := context.WithTimeout(ctx, s.cfg.LoadTimeout)
	defer cancel()
	if err := sess.Ctrl.LoadBuildings(loadCtx); err != nil && !errors.Is(err, selection.ErrClosed) {
		log.Printf("session %s: catalog load failed: %v", sess.ID, err)
	}

	s.mu.Lock()
	_ = s.cache.Set(sess.ID, sess)
	s.mu.Unlock()
	s.metrics.sessionOpened()
	return sess
}

// Resolve finds the request's session or creates one, setting the cookie.
func (s *Sessions) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.Get(c.Value); ok {
			return sess
		}
	}
	sess := s.Create(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	return s.cache.Len(false)
}

// CloseAll closes and drops every session.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.cache.GetALL(false) {
		v.(*Session).close(s.metrics)
	}
	s.cache.Purge()
}
