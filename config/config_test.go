package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "")
	t.Setenv("LEDGER_PATH", "")
	t.Setenv("AI_TIMEOUT", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LedgerFile, cfg.LedgerBackend)
	assert.Equal(t, filepath.Join("data", "luxe_bookings.json"), cfg.LedgerPath)
	assert.Equal(t, 90*time.Second, cfg.AITimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "SQLite")
	t.Setenv("LEDGER_PATH", "/tmp/x.db")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("THINKING_BUDGET", "1024")
	t.Setenv("FRONTEND_URL", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LedgerSQLite, cfg.LedgerBackend)
	assert.Equal(t, "/tmp/x.db", cfg.LedgerPath)
	assert.Equal(t, 15*time.Second, cfg.AITimeout)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 1024, cfg.ThinkingBudget)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.FrontendURLs)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "redis")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://u:p@db/n"
	assert.Equal(t, "postgres://u:p@db/n", cfg.DSN())
}
