package schedule

import (
	"strings"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBlockedReasonTooLong = errs.Mark(errs.New("blocked period reason is too long"), errs.ErrDomainValidation)

// BlockedPeriod is time the owner has taken off the calendar.
type BlockedPeriod struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	interval  appointment.Interval
	reason    string
	createdAt time.Time
}

func NewBlockedPeriod(ownerID uuid.UUID, iv appointment.Interval, reason string, now time.Time) (*BlockedPeriod, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) > appointment.MaxReasonLength {
		return nil, ErrBlockedReasonTooLong
	}
	if iv.IsZero() {
		return nil, errs.Mark(errs.New("blocked interval is required"), errs.ErrInvalidTimeRange)
	}
	return &BlockedPeriod{
		id:        uuid.New(),
		ownerID:   ownerID,
		interval:  iv,
		reason:    reason,
		createdAt: now.UTC(),
	}, nil
}

func ReconstructBlockedPeriod(id, ownerID uuid.UUID, iv appointment.Interval, reason string, createdAt time.Time) *BlockedPeriod {
	return &BlockedPeriod{id: id, ownerID: ownerID, interval: iv, reason: reason, createdAt: createdAt}
}

func (b *BlockedPeriod) ID() uuid.UUID                  { return b.id }
func (b *BlockedPeriod) OwnerID() uuid.UUID             { return b.ownerID }
func (b *BlockedPeriod) Interval() appointment.Interval { return b.interval }
func (b *BlockedPeriod) Reason() string                 { return b.reason }
func (b *BlockedPeriod) CreatedAt() time.Time           { return b.createdAt }

// Intervals projects blocked periods for the resolver.
func Intervals(periods []*BlockedPeriod) []appointment.Interval {
	out := make([]appointment.Interval, 0, len(periods))
	for _, p := range periods {
		out = append(out, p.interval)
	}
	return out
}
