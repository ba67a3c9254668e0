package readstore

import (
	"context"
	"time"

	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/repository/converter"
	"appointment-engine/internal/pkg/pgconv"
	"appointment-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentViewQueries interface {
	GetAppointment(ctx context.Context, db query.DBTX, arg query.GetAppointmentParams) (query.Appointment, error)
	ListAppointments(ctx context.Context, db query.DBTX, arg query.ListAppointmentsParams) ([]query.Appointment, error)
	ListActiveAppointmentsInRange(ctx context.Context, db query.DBTX, arg query.ListActiveAppointmentsInRangeParams) ([]query.Appointment, error)
	GetAppointmentStats(ctx context.Context, db query.DBTX, arg query.GetAppointmentStatsParams) (query.GetAppointmentStatsRow, error)
}

type AppointmentReadStore struct {
	queries AppointmentViewQueries
	db      query.DBTX
}

func NewAppointmentReadStore(queries AppointmentViewQueries, db query.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *AppointmentReadStore) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*queries.AppointmentView, error) {
	row, err := r.queries.GetAppointment(ctx, r.db, query.GetAppointmentParams{ID: id, OwnerID: ownerID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	return rowToAppointmentView(row)
}

func (r *AppointmentReadStore) FindFirstPage(ctx context.Context, ownerID uuid.UUID, filter queries.AppointmentFilter, limit int32) ([]*queries.AppointmentView, error) {
	params := listParams(ownerID, filter, limit)
	rows, err := r.queries.ListAppointments(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments first page", err)
	}
	return rowsToAppointmentViews(rows)
}

func (r *AppointmentReadStore) FindKeyset(ctx context.Context, ownerID uuid.UUID, filter queries.AppointmentFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.AppointmentView, error) {
	params := listParams(ownerID, filter, limit)
	params.AfterCreatedAt = pgconv.TimeToPgtype(lastCreatedAt)
	params.AfterID = pgconv.UUIDToPgtype(lastID)

	rows, err := r.queries.ListAppointments(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments keyset", err)
	}
	return rowsToAppointmentViews(rows)
}

func (r *AppointmentReadStore) FindActiveInRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*queries.AppointmentView, error) {
	rows, err := r.queries.ListActiveAppointmentsInRange(ctx, r.db, query.ListActiveAppointmentsInRangeParams{
		OwnerID: ownerID,
		From:    pgconv.TimeToPgtype(from),
		To:      pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active appointments", err)
	}
	return rowsToAppointmentViews(rows)
}

func (r *AppointmentReadStore) Stats(ctx context.Context, ownerID uuid.UUID, from, to *time.Time, now time.Time) (*queries.AppointmentStats, error) {
	row, err := r.queries.GetAppointmentStats(ctx, r.db, query.GetAppointmentStatsParams{
		OwnerID: ownerID,
		From:    pgconv.TimePtrToPgtype(from),
		To:      pgconv.TimePtrToPgtype(to),
		Now:     pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute appointment stats", err)
	}

	return &queries.AppointmentStats{
		Total:     row.Total,
		Upcoming:  row.Upcoming,
		Completed: row.Completed,
		Cancelled: row.Cancelled,
		NoShow:    row.NoShow,
		ByStatus: map[string]int64{
			"scheduled": row.Scheduled,
			"confirmed": row.Confirmed,
			"completed": row.Completed,
			"cancelled": row.Cancelled,
			"no_show":   row.NoShow,
		},
		AvgDurationMinutes: row.AvgDurationMinutes,
		TotalHours:         row.TotalHours,
	}, nil
}

func listParams(ownerID uuid.UUID, filter queries.AppointmentFilter, limit int32) query.ListAppointmentsParams {
	params := query.ListAppointmentsParams{
		OwnerID: ownerID,
		From:    pgconv.TimePtrToPgtype(filter.From),
		To:      pgconv.TimePtrToPgtype(filter.To),
		Limit:   limit,
	}
	if filter.Status != nil {
		params.Status = pgtype.Text{String: filter.Status.String(), Valid: true}
	}
	return params
}

func rowToAppointmentView(row query.Appointment) (*queries.AppointmentView, error) {
	a, err := converter.AppointmentToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert appointment", err, infra.KindDBFailure)
	}
	return queries.NewAppointmentView(a), nil
}

func rowsToAppointmentViews(rows []query.Appointment) ([]*queries.AppointmentView, error) {
	result := make([]*queries.AppointmentView, 0, len(rows))
	for _, row := range rows {
		v, err := rowToAppointmentView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
