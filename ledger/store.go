package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("booking not found")
	ErrIDCollision = errors.New("could not generate a unique booking id")
)

// Store is the persisted booking list. Implementations must treat a missing
// collection as empty and make Remove of an unknown id a no-op.
type Store interface {
	Load(ctx context.Context) ([]BookingRecord, error)
	Append(ctx context.Context, rec BookingRecord) error
	Remove(ctx context.Context, id string) error
}

const maxIDAttempts = 5

// Confirm creates a booking for details with an id not already present in
// the store and appends it. Uniqueness is checked against a snapshot; a
// concurrent writer on another process can still race it.
func Confirm(ctx context.Context, s Store, gen IDGenerator, details Details, now time.Time) (BookingRecord, error) {
	existing, err := s.Load(ctx)
	if err != nil {
		return BookingRecord{}, fmt.Errorf("failed to load ledger: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		taken[b.ID] = struct{}{}
	}

	for i := 0; i < maxIDAttempts; i++ {
		id := gen(details.BookingType())
		if _, dup := taken[id]; dup {
			continue
		}
		rec := NewBooking(id, details, now)
		if err := s.Append(ctx, rec); err != nil {
			return BookingRecord{}, fmt.Errorf("failed to append booking: %w", err)
		}
		return rec, nil
	}
	return BookingRecord{}, ErrIDCollision
}

// Find returns the booking with id, or ErrNotFound.
func Find(ctx context.Context, s Store, id string) (BookingRecord, error) {
	all, err := s.Load(ctx)
	if err != nil {
		return BookingRecord{}, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return BookingRecord{}, ErrNotFound
}
