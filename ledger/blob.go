package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"luxetravel/logger"
)

// blobBackend reads and replaces the single serialized value that holds the
// whole ledger. read returns nil when nothing has been written yet.
type blobBackend interface {
	read(ctx context.Context) ([]byte, error)
	write(ctx context.Context, data []byte) error
}

// blobStore implements Store as read-modify-write over one JSON array.
// The mutex serialises writers inside this process only; two processes
// sharing the same backend are last-writer-wins.
type blobStore struct {
	mu      sync.Mutex
	name    string
	backend blobBackend
}

// blobEntry is one element of the stored array. rec is nil when the element
// could not be decoded; such entries are hidden from Load but written back
// byte-for-byte so a later save never loses them.
type blobEntry struct {
	id  string
	raw json.RawMessage
	rec *BookingRecord
}

func (s *blobStore) Load(ctx context.Context) ([]BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]BookingRecord, 0, len(entries))
	for _, e := range entries {
		if e.rec != nil {
			records = append(records, *e.rec)
		}
	}
	return records, nil
}

func (s *blobStore) Append(ctx context.Context, rec BookingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("[%s] encode failed: %w", s.name, err)
	}
	return s.save(ctx, append(entries, blobEntry{id: rec.ID, raw: data, rec: &rec}))
}

func (s *blobStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]blobEntry, 0, len(entries))
	for _, e := range entries {
		if e.id != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.save(ctx, kept)
}

func (s *blobStore) load(ctx context.Context) ([]blobEntry, error) {
	data, err := s.backend.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("[%s] read failed: %w", s.name, err)
	}
	return decodeBlob(s.name, data), nil
}

func (s *blobStore) save(ctx context.Context, entries []blobEntry) error {
	raw := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		raw[i] = e.raw
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("[%s] encode failed: %w", s.name, err)
	}
	if err := s.backend.write(ctx, data); err != nil {
		return fmt.Errorf("[%s] write failed: %w", s.name, err)
	}
	return nil
}

// decodeBlob never fails: an unreadable blob is an empty ledger. An element
// that does not decode as a booking is kept raw, with only its id read.
func decodeBlob(store string, data []byte) []blobEntry {
	entries := []blobEntry{}
	if len(data) == 0 {
		return entries
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Log.Warn("[ledger] corrupt ledger blob, treating as empty",
			zap.String("store", store), zap.Error(err))
		return entries
	}

	for i, r := range raw {
		var rec BookingRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			var head struct {
				ID string `json:"id"`
			}
			_ = json.Unmarshal(r, &head)
			logger.Log.Warn("[ledger] skipping unreadable booking",
				zap.String("store", store), zap.Int("index", i), zap.String("id", head.ID), zap.Error(err))
			entries = append(entries, blobEntry{id: head.ID, raw: r})
			continue
		}
		entries = append(entries, blobEntry{id: rec.ID, raw: r, rec: &rec})
	}
	return entries
}

// ─── Memory ───────────────────────────────────────────────────────────────────

type memoryBlob struct {
	data []byte
}

func (m *memoryBlob) read(context.Context) ([]byte, error) {
	return m.data, nil
}

func (m *memoryBlob) write(_ context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

// MemoryStore keeps the serialized ledger in memory. Contents are lost on
// restart.
type MemoryStore struct {
	blobStore
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobStore{name: "memory", backend: &memoryBlob{}}}
}
