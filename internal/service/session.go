package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
	"github.com/iliyamo/cricket-ticket-booking/internal/monitoring"
)

// DefaultSessionTTL is how long an idle booking session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Session is one user's pass through seat selection for a match.  All
// methods are safe for concurrent use.
type Session struct {
	ID    string
	Match model.Match

	mu       sync.Mutex
	seats    *SeatMap
	lastSeen time.Time
}

// Toggle flips a seat and returns the seat's new state.  changed is false
// when the seat is unknown or unavailable.
func (s *Session) Toggle(seatID string) (seat model.Seat, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed = s.seats.Toggle(seatID)
	seat, _ = s.seats.Seat(seatID)
	switch {
	case !changed:
		monitoring.ObserveSeatToggle("ignored")
	case seat.Selected:
		monitoring.ObserveSeatToggle("selected")
	default:
		monitoring.ObserveSeatToggle("deselected")
	}
	return seat, changed
}

// Seats returns the grid, optionally limited to one section.
func (s *Session) Seats(section string) []model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.seats.Seats()
	if section == "" {
		return all
	}
	return SeatsInSection(all, section)
}

// Sections summarizes seat counts per section.
func (s *Session) Sections() []SectionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.seats.seats)
}

// Selection returns the selected seats and their total.
func (s *Session) Selection() ([]model.Seat, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.seats.Selected()
	return sel, TotalPrice(sel)
}

// Checkout snapshots the current selection for the payment stage.
func (s *Session) Checkout() (model.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ProceedToPayment(s.seats.Selected(), s.Match)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionStore keeps booking sessions in memory.  Sessions do not share
// seat maps; each one draws its own availability from a per-session
// generator seeded from the store's master generator.
type SessionStore struct {
	TTL    time.Duration
	Now    func() time.Time
	Logger logrus.FieldLogger

	mu       sync.Mutex
	master   *rand.Rand
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.  A non-zero seed makes the
// sequence of generated seat maps reproducible.
func NewSessionStore(ttl time.Duration, seed uint64, logger logrus.FieldLogger) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SessionStore{
		TTL:      ttl,
		Now:      time.Now,
		Logger:   logger,
		master:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		sessions: make(map[string]*Session),
	}
}

// Create opens a session for match with a freshly generated seat map.
func (st *SessionStore) Create(match model.Match) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	src := rand.New(rand.NewPCG(st.master.Uint64(), st.master.Uint64()))
	s := &Session{
		ID:       uuid.NewString(),
		Match:    match,
		seats:    NewSeatMap(src),
		lastSeen: st.Now(),
	}
	st.sessions[s.ID] = s
	monitoring.SetActiveSessions(len(st.sessions))
	return s
}

// Get returns a live session and refreshes its idle timer.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := st.Now()
	if now.Sub(s.idleSince()) > st.TTL {
		st.remove(id)
		return nil, ErrSessionNotFound
	}
	s.touch(now)
	return s, nil
}

// Len returns the number of sessions held.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	monitoring.SetActiveSessions(len(st.sessions))
	st.mu.Unlock()
}

// Sweep drops every session idle for longer than TTL and returns how many
// were removed.
func (st *SessionStore) Sweep() int {
	now := st.Now()
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > st.TTL {
			delete(st.sessions, id)
			removed++
		}
	}
	monitoring.SetActiveSessions(len(st.sessions))
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 && st.Logger != nil {
				st.Logger.WithField("removed", n).Debug("expired booking sessions swept")
			}
		}
	}
}
