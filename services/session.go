package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"luxetravel/logger"
	"luxetravel/travel"
)

var ErrSessionNotFound = errors.New("session not found")

type Kind string

const (
	KindFlights Kind = "flights"
	KindHotels  Kind = "hotels"
)

type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeEmpty Outcome = "empty"
	OutcomeError Outcome = "error"
)

// ResultSet is what one search produced. Summary holds the full AI text, or
// the fallback message when the search failed.
type ResultSet struct {
	Token    uint64
	Outcome  Outcome
	Overview string
	Summary  string
	Sources  []travel.GroundingSource
	Flights  []travel.Flight
	Hotels   []travel.Hotel
	At       time.Time
}

type slot struct {
	latest  uint64
	current ResultSet
}

type session struct {
	lastSeen time.Time
	slots    map[Kind]*slot
	chat     []ChatTurn
}

// ─── Session Store ────────────────────────────────────────────────────────────

// SessionStore keeps per-client search state in memory. Each search takes a
// token from Begin; only the holder of the newest token may replace the
// visible result set, so a slow earlier response never overwrites a newer one.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &session{
		lastSeen: s.now(),
		slots:    map[Kind]*slot{KindFlights: {}, KindHotels: {}},
	}
	return id
}

// get must be called with mu held.
func (s *SessionStore) get(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// Touch reports ErrSessionNotFound for an unknown id and otherwise marks the
// session as active.
func (s *SessionStore) Touch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.get(id)
	return err
}

// Begin starts a new request generation and returns its token.
func (s *SessionStore) Begin(id string, kind Kind) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return 0, err
	}
	sl := sess.slots[kind]
	sl.latest++
	return sl.latest, nil
}

// Commit stores rs as the session's visible result set if rs.Token is still
// the newest generation. It reports false when the result was superseded.
func (s *SessionStore) Commit(id string, kind Kind, rs ResultSet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return false, err
	}
	sl := sess.slots[kind]
	if rs.Token != sl.latest {
		logger.Log.Debug("[session] dropping superseded result",
			zap.String("session", id), zap.String("kind", string(kind)),
			zap.Uint64("token", rs.Token), zap.Uint64("latest", sl.latest))
		return false, nil
	}
	if rs.At.IsZero() {
		rs.At = s.now()
	}
	sl.current = rs
	return true, nil
}

// Results returns the visible result set. Callers must not modify the
// returned slices.
func (s *SessionStore) Results(id string, kind Kind) (ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return ResultSet{}, err
	}
	return sess.slots[kind].current, nil
}

func (s *SessionStore) History(id string) ([]ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	out := make([]ChatTurn, len(sess.chat))
	copy(out, sess.chat)
	return out, nil
}

func (s *SessionStore) AppendChat(id string, turns ...ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return err
	}
	sess.chat = append(sess.chat, turns...)
	return nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
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

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunJanitor sweeps on every tick until ctx is cancelled.
func (s *SessionStore) RunJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Log.Info("[session] evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}
