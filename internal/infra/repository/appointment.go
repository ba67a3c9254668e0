package repository

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/repository/$GOFILE -package=repositorymock

import (
	"context"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/repository/converter"
	"appointment-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AppointmentWriteQueries interface {
	LockOwnerSchedule(ctx context.Context, db query.DBTX, ownerID uuid.UUID) error
	HasOverlappingAppointment(ctx context.Context, db query.DBTX, arg query.HasOverlappingAppointmentParams) (bool, error)
	CreateAppointment(ctx context.Context, db query.DBTX, arg query.CreateAppointmentParams) error
	UpdateAppointment(ctx context.Context, db query.DBTX, arg query.UpdateAppointmentParams) (int64, error)
	GetAppointment(ctx context.Context, db query.DBTX, arg query.GetAppointmentParams) (query.Appointment, error)
	GetAppointmentForUpdate(ctx context.Context, db query.DBTX, arg query.GetAppointmentParams) (query.Appointment, error)
	MarkReminderSent(ctx context.Context, db query.DBTX, arg query.GetAppointmentParams) (int64, error)
}

type AppointmentRepository struct {
	queries AppointmentWriteQueries
	db      query.DBTX
}

func NewAppointmentRepository(queries AppointmentWriteQueries, db query.DBTX) *AppointmentRepository {
	return &AppointmentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AppointmentRepository) LockOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := r.queries.LockOwnerSchedule(ctx, r.db, ownerID); err != nil {
		return infra.WrapRepoErr("failed to lock owner schedule", err)
	}
	return nil
}

func (r *AppointmentRepository) HasOverlap(ctx context.Context, ownerID uuid.UUID, iv appointment.Interval, exclude *uuid.UUID) (bool, error) {
	overlap, err := r.queries.HasOverlappingAppointment(ctx, r.db, query.HasOverlappingAppointmentParams{
		OwnerID:   ownerID,
		StartTime: pgconv.TimeToPgtype(iv.Start()),
		EndTime:   pgconv.TimeToPgtype(iv.End()),
		ExcludeID: pgconv.UUIDPtrToPgtype(exclude),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check appointment overlap", err)
	}
	return overlap, nil
}

// Create reports an exclusion-constraint violation as KindConflict.
func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	params, err := converter.AppointmentToInfra(a)
	if err != nil {
		return infra.WrapRepoErr("failed to convert appointment", err, infra.KindDBFailure)
	}
	if err := r.queries.CreateAppointment(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	params, err := converter.AppointmentToUpdateParams(a)
	if err != nil {
		return infra.WrapRepoErr("failed to convert appointment", err, infra.KindDBFailure)
	}
	n, err := r.queries.UpdateAppointment(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*appointment.Appointment, error) {
	row, err := r.queries.GetAppointment(ctx, r.db, query.GetAppointmentParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get appointment", err)
	}
	return r.toDomain(row)
}

func (r *AppointmentRepository) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*appointment.Appointment, error) {
	row, err := r.queries.GetAppointmentForUpdate(ctx, r.db, query.GetAppointmentParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock appointment", err)
	}
	return r.toDomain(row)
}

// MarkReminderSent reports false when the flag was already set.
func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	n, err := r.queries.MarkReminderSent(ctx, r.db, query.GetAppointmentParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark reminder sent", err)
	}
	return n > 0, nil
}

func (r *AppointmentRepository) toDomain(row query.Appointment) (*appointment.Appointment, error) {
	a, err := converter.AppointmentToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert appointment", err, infra.KindDBFailure)
	}
	return a, nil
}
