package housekeeping

import (
	"context"
	"log/slog"
	"time"
)

type ExpiredKeyPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Janitor removes idempotency keys past their retention window.
type Janitor struct {
	purger ExpiredKeyPurger
	every  time.Duration
}

func NewJanitor(purger ExpiredKeyPurger, every time.Duration) *Janitor {
	if every <= 0 {
		every = time.Hour
	}
	return &Janitor{purger: purger, every: every}
}

func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

func (j *Janitor) Sweep(ctx context.Context) int64 {
	n, err := j.purger.DeleteExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.ErrorContext(ctx, "idempotency key purge failed", slog.String("error", err.Error()))
		}
		return 0
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired idempotency keys purged", slog.Int64("count", n))
	}
	return n
}
