package readstore

import (
	"context"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/repository/converter"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/pgconv"
	"appointment-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ScheduleViewQueries interface {
	GetOwner(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Owner, error)
	GetCalendarSettings(ctx context.Context, db query.DBTX, ownerID uuid.UUID) (query.CalendarSetting, error)
	ListBlockedPeriods(ctx context.Context, db query.DBTX, arg query.ListBlockedPeriodsParams) ([]query.BlockedPeriod, error)
	ListCalendarIntegrations(ctx context.Context, db query.DBTX, ownerID uuid.UUID) ([]query.CalendarIntegration, error)
	ListActiveAppointmentsInRange(ctx context.Context, db query.DBTX, arg query.ListActiveAppointmentsInRangeParams) ([]query.Appointment, error)
}

// SnapshotDB is a pool that can also open the snapshot transaction.
type SnapshotDB interface {
	query.DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type ScheduleReadStore struct {
	queries ScheduleViewQueries
	db      SnapshotDB
}

func NewScheduleReadStore(queries ScheduleViewQueries, db SnapshotDB) *ScheduleReadStore {
	return &ScheduleReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ScheduleReadStore) Settings(ctx context.Context, ownerID uuid.UUID) (*schedule.Settings, error) {
	return r.settings(ctx, r.db, ownerID)
}

func (r *ScheduleReadStore) settings(ctx context.Context, db query.DBTX, ownerID uuid.UUID) (*schedule.Settings, error) {
	row, err := r.queries.GetCalendarSettings(ctx, db, ownerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return schedule.DefaultSettings(ownerID), nil
		}
		return nil, infra.WrapRepoErr("failed to get calendar settings", err)
	}
	s, err := converter.SettingsToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert calendar settings", err, infra.KindDBFailure)
	}
	return s, nil
}

func (r *ScheduleReadStore) BlockedPeriods(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*schedule.BlockedPeriod, error) {
	rows, err := r.queries.ListBlockedPeriods(ctx, r.db, query.ListBlockedPeriodsParams{
		OwnerID: ownerID,
		From:    pgconv.TimePtrToPgtype(from),
		To:      pgconv.TimePtrToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked periods", err)
	}
	periods, err := converter.BlockedPeriodsToDomain(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert blocked periods", err, infra.KindDBFailure)
	}
	return periods, nil
}

func (r *ScheduleReadStore) Integrations(ctx context.Context, ownerID uuid.UUID) ([]*integration.Integration, error) {
	rows, err := r.queries.ListCalendarIntegrations(ctx, r.db, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list calendar integrations", err)
	}
	out := make([]*integration.Integration, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.IntegrationToDomain(row))
	}
	return out, nil
}

// Snapshot reads the owner, settings, active appointments and blocked periods
// inside one read-only REPEATABLE READ transaction so all four agree.
func (r *ScheduleReadStore) Snapshot(ctx context.Context, ownerID uuid.UUID, rng appointment.Interval) (*queries.ScheduleSnapshot, error) {
	var snap queries.ScheduleSnapshot
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	err := pgx.BeginTxFunc(ctx, r.db, opts, func(tx pgx.Tx) error {
		if _, err := r.queries.GetOwner(ctx, tx, ownerID); err != nil {
			if pgconv.IsNoRows(err) {
				return errs.ErrOwnerNotFound
			}
			return infra.WrapRepoErr("failed to get owner", err)
		}

		settings, err := r.settings(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		snap.Settings = settings

		from := pgconv.TimeToPgtype(rng.Start())
		to := pgconv.TimeToPgtype(rng.End())

		appts, err := r.queries.ListActiveAppointmentsInRange(ctx, tx, query.ListActiveAppointmentsInRangeParams{
			OwnerID: ownerID,
			From:    from,
			To:      to,
		})
		if err != nil {
			return infra.WrapRepoErr("failed to list active appointments", err)
		}
		snap.Booked = make([]appointment.Interval, 0, len(appts))
		for _, a := range appts {
			iv, err := appointment.NewInterval(a.StartTime.Time, a.EndTime.Time)
			if err != nil {
				return infra.WrapRepoErr("stored appointment has an invalid interval", err, infra.KindDBFailure)
			}
			snap.Booked = append(snap.Booked, iv)
		}

		blocked, err := r.queries.ListBlockedPeriods(ctx, tx, query.ListBlockedPeriodsParams{
			OwnerID: ownerID,
			From:    from,
			To:      to,
		})
		if err != nil {
			return infra.WrapRepoErr("failed to list blocked periods", err)
		}
		periods, err := converter.BlockedPeriodsToDomain(blocked)
		if err != nil {
			return infra.WrapRepoErr("failed to convert blocked periods", err, infra.KindDBFailure)
		}
		snap.Blocked = schedule.Intervals(periods)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
