package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxetravel/travel"
)

func TestSessionStore_LatestRequestWins(t *testing.T) {
	s := NewSessionStore(time.Hour)
	id := s.Create()

	first, err := s.Begin(id, KindFlights)
	require.NoError(t, err)
	second, err := s.Begin(id, KindFlights)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	// the second search resolves first
	ok, err := s.Commit(id, KindFlights, ResultSet{Token: second, Outcome: OutcomeOK,
		Flights: []travel.Flight{{Airline: "KLM"}}})
	require.NoError(t, err)
	assert.True(t, ok)

	// the stale one arrives late and is dropped
	ok, err = s.Commit(id, KindFlights, ResultSet{Token: first, Outcome: OutcomeOK,
		Flights: []travel.Flight{{Airline: "Delta"}}})
	require.NoError(t, err)
	assert.False(t, ok)

	rs, err := s.Results(id, KindFlights)
	require.NoError(t, err)
	require.Len(t, rs.Flights, 1)
	assert.Equal(t, "KLM", rs.Flights[0].Airline)
	assert.Equal(t, second, rs.Token)
}

func TestSessionStore_KindsAreIndependent(t *testing.T) {
	s := NewSessionStore(time.Hour)
	id := s.Create()

	ft, _ := s.Begin(id, KindFlights)
	ht, _ := s.Begin(id, KindHotels)

	ok, err := s.Commit(id, KindHotels, ResultSet{Token: ht, Outcome: OutcomeEmpty})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Commit(id, KindFlights, ResultSet{Token: ft, Outcome: OutcomeError})
	require.NoError(t, err)
	assert.True(t, ok)

	hotels, _ := s.Results(id, KindHotels)
	flights, _ := s.Results(id, KindFlights)
	assert.Equal(t, OutcomeEmpty, hotels.Outcome)
	assert.Equal(t, OutcomeError, flights.Outcome)
}

func TestSessionStore_UnknownSession(t *testing.T) {
	s := NewSessionStore(time.Hour)

	_, err := s.Begin("nope", KindFlights)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Results("nope", KindHotels)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.AppendChat("nope", ChatTurn{Role: "user", Text: "hi"}), ErrSessionNotFound)
}

func TestSessionStore_ChatHistoryIsCopied(t *testing.T) {
	s := NewSessionStore(time.Hour)
	id := s.Create()

	require.NoError(t, s.AppendChat(id,
		ChatTurn{Role: "user", Text: "Hello"},
		ChatTurn{Role: "model", Text: "Good evening"}))

	h, err := s.History(id)
	require.NoError(t, err)
	require.Len(t, h, 2)
	h[0].Text = "changed"

	h2, _ := s.History(id)
	assert.Equal(t, "Hello", h2[0].Text)
}

func TestSessionStore_Sweep(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore(time.Hour)
	s.now = func() time.Time { return now }

	idle := s.Create()
	now = now.Add(45 * time.Minute)
	active := s.Create()
	now = now.Add(30 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err := s.Results(idle, KindFlights)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Results(active, KindFlights)
	assert.NoError(t, err)
}

func TestSessionStore_ConcurrentBegin(t *testing.T) {
	s := NewSessionStore(time.Hour)
	id := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := s.Begin(id, KindHotels)
			if err == nil {
				_, _ = s.Commit(id, KindHotels, ResultSet{Token: tok, Outcome: OutcomeOK})
			}
		}()
	}
	wg.Wait()

	last, err := s.Begin(id, KindHotels)
	require.NoError(t, err)
	assert.Equal(t, uint64(51), last)
}
