package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"luxetravel/logger"
)

// PostgresStore keeps one row per booking in the bookings table created by
// the database package. Append and Remove are single statements, so unlike
// the blob stores it is safe with several writers.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context) ([]BookingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, details, booked_at, status
		FROM bookings
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	records := []BookingRecord{}
	for rows.Next() {
		var (
			id, typ, status string
			details         []byte
			bookedAt        time.Time
		)
		if err := rows.Scan(&id, &typ, &details, &bookedAt, &status); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		rec, err := recordFromRow(id, typ, status, details, bookedAt)
		if err != nil {
			logger.Log.Warn("[ledger] skipping unreadable booking",
				zap.String("store", "postgres"), zap.String("id", id), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// recordFromRow applies the same checks a blob store applies when it decodes
// a stored element.
func recordFromRow(id, typ, status string, details []byte, bookedAt time.Time) (BookingRecord, error) {
	if id == "" {
		return BookingRecord{}, fmt.Errorf("booking has no id")
	}
	if !Status(status).Valid() {
		return BookingRecord{}, fmt.Errorf("unknown booking status %q", status)
	}
	d, err := DecodeDetails(Type(typ), details)
	if err != nil {
		return BookingRecord{}, err
	}
	return BookingRecord{
		ID:      id,
		Type:    Type(typ),
		Details: d,
		Date:    bookedAt.UTC(),
		Status:  Status(status),
	}, nil
}

func (s *PostgresStore) Append(ctx context.Context, rec BookingRecord) error {
	if rec.Details == nil {
		return fmt.Errorf("booking %s has no details", rec.ID)
	}
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, type, details, booked_at, status)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, string(rec.Type), string(details), rec.Date, string(rec.Status))
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
