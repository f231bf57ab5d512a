package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(ttl time.Duration, seed uint64) (*SessionStore, *fakeClock) {
	logger, _ := test.NewNullLogger()
	clk := &fakeClock{now: fixedNow}
	st := NewSessionStore(ttl, seed, logger)
	st.Now = clk.Now
	return st, clk
}

func TestSessionStore_SeededSequenceIsReproducible(t *testing.T) {
	a, _ := newTestStore(time.Minute, 11)
	b, _ := newTestStore(time.Minute, 11)

	assert.Equal(t, a.Create(testMatch).Seats(""), b.Create(testMatch).Seats(""))
	assert.Equal(t, a.Create(testMatch).Seats(""), b.Create(testMatch).Seats(""))
}

func TestSessionStore_SessionsArePrivate(t *testing.T) {
	st, _ := newTestStore(time.Minute, 5)
	s1 := st.Create(testMatch)
	s2 := st.Create(testMatch)
	require.NotEqual(t, s1.ID, s2.ID)

	var id string
	for _, seat := range s1.Seats("E") {
		if seat.Available {
			id = seat.ID
			break
		}
	}
	require.NotEmpty(t, id)
	_, changed := s1.Toggle(id)
	require.True(t, changed)

	sel1, total1 := s1.Selection()
	sel2, total2 := s2.Selection()
	assert.Len(t, sel1, 1)
	assert.Equal(t, 100, total1)
	assert.Empty(t, sel2)
	assert.Zero(t, total2)
}

func TestSessionStore_GetExpiresIdleSessions(t *testing.T) {
	st, clk := newTestStore(10*time.Minute, 1)
	s := st.Create(testMatch)

	clk.Advance(9 * time.Minute)
	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	// Get refreshed the idle timer.
	clk.Advance(9 * time.Minute)
	_, err = st.Get(s.ID)
	require.NoError(t, err)

	clk.Advance(11 * time.Minute)
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, st.Len())

	_, err = st.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Sweep(t *testing.T) {
	st, clk := newTestStore(time.Minute, 1)
	old := st.Create(testMatch)
	clk.Advance(2 * time.Minute)
	fresh := st.Create(testMatch)

	assert.Equal(t, 1, st.Sweep())
	_, err := st.Get(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSessionStore_RunStopsOnCancel(t *testing.T) {
	st, _ := newTestStore(time.Minute, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSession_CheckoutSnapshot(t *testing.T) {
	st, _ := newTestStore(time.Minute, 3)
	s := st.Create(testMatch)

	_, err := s.Checkout()
	assert.ErrorIs(t, err, ErrEmptySelection)

	var picked []string
	for _, seat := range s.Seats("C") {
		if seat.Available {
			picked = append(picked, seat.ID)
			if len(picked) == 2 {
				break
			}
		}
	}
	require.Len(t, picked, 2)
	for _, id := range picked {
		s.Toggle(id)
	}

	co, err := s.Checkout()
	require.NoError(t, err)
	assert.Equal(t, 500, co.TotalPrice)
	assert.Equal(t, testMatch, co.Match)

	// later toggles do not change the snapshot
	s.Toggle(picked[0])
	assert.Len(t, co.SelectedSeats, 2)
	assert.Equal(t, 500, co.TotalPrice)
}

func TestSession_Sections(t *testing.T) {
	st, _ := newTestStore(time.Minute, 3)
	s := st.Create(testMatch)
	sum := s.Sections()
	require.Len(t, sum, 5)
	assert.Equal(t, "A", sum[0].Section)
	assert.Equal(t, 300, sum[0].Total)
}
