//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both the pool and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestOwner(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	ownerID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO owners (id, name, email) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		ownerID, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM owners WHERE email = $1", email).Scan(&ownerID)
	}

	return ownerID
}

// AllWeekHours opens every weekday from open to close ("HH:MM").
func AllWeekHours(open, close string) string {
	parts := make([]string, 0, 7)
	for day := 0; day < 7; day++ {
		parts = append(parts, fmt.Sprintf(`{"day_of_week":%d,"start_time":"%s","end_time":"%s","is_available":true}`, day, open, close))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

type SettingsFixture struct {
	BusinessHours   string
	SlotMinutes     int
	BufferMinutes   int
	MaxAdvanceDays  int
	MinAdvanceHours int
	Timezone        string
	AutoConfirm     bool
}

func DefaultSettingsFixture() SettingsFixture {
	return SettingsFixture{
		BusinessHours:   AllWeekHours("00:00", "23:59"),
		SlotMinutes:     30,
		MaxAdvanceDays:  30,
		MinAdvanceHours: 0,
		Timezone:        "UTC",
	}
}

func CreateTestSettings(t *testing.T, db DBLike, ownerID uuid.UUID, f SettingsFixture) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO calendar_settings (owner_id, business_hours, slot_duration_minutes, buffer_time_minutes,
		    max_advance_booking_days, min_advance_booking_hours, timezone, auto_confirm)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id) DO UPDATE SET
		    business_hours = EXCLUDED.business_hours,
		    slot_duration_minutes = EXCLUDED.slot_duration_minutes,
		    buffer_time_minutes = EXCLUDED.buffer_time_minutes,
		    max_advance_booking_days = EXCLUDED.max_advance_booking_days,
		    min_advance_booking_hours = EXCLUDED.min_advance_booking_hours,
		    timezone = EXCLUDED.timezone,
		    auto_confirm = EXCLUDED.auto_confirm`,
		ownerID, f.BusinessHours, f.SlotMinutes, f.BufferMinutes, f.MaxAdvanceDays, f.MinAdvanceHours, f.Timezone, f.AutoConfirm)
	require.NoError(t, err)
}

func CountRows(t *testing.T, db DBLike, sql string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), sql, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates every table except the migration ledger
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
