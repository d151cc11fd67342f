package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"luxetravel/logger"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// ─── Init ─────────────────────────────────────────────────────────────────────

// Open connects to Postgres, waits for it to come up and applies the
// migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// the database container may still be starting
	for i := 0; i < connectAttempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		logger.Log.Warn("[db] waiting for database",
			zap.Int("attempt", i+1), zap.Int("of", connectAttempts), zap.Error(err))

		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Log.Info("[db] database connected and migrated")
	return db, nil
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate(ctx context.Context, db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			seq        BIGSERIAL,
			id         TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			details    JSONB NOT NULL,
			booked_at  TIMESTAMPTZ NOT NULL,
			status     TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_seq
			ON bookings(seq)`,
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
