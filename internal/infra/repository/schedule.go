package repository

import (
	"context"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/repository/converter"
	"appointment-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SettingsWriteQueries interface {
	UpsertCalendarSettings(ctx context.Context, db query.DBTX, arg query.UpsertCalendarSettingsParams) (query.CalendarSetting, error)
}

type SettingsRepository struct {
	queries SettingsWriteQueries
	db      query.DBTX
}

func NewSettingsRepository(queries SettingsWriteQueries, db query.DBTX) *SettingsRepository {
	return &SettingsRepository{queries: queries, db: db}
}

// Save replaces the stored settings row and returns it as persisted.
func (r *SettingsRepository) Save(ctx context.Context, s *schedule.Settings) (*schedule.Settings, error) {
	params, err := converter.SettingsToInfra(s)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert settings", err, infra.KindDBFailure)
	}
	row, err := r.queries.UpsertCalendarSettings(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to save calendar settings", err)
	}
	saved, err := converter.SettingsToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert settings", err, infra.KindDBFailure)
	}
	return saved, nil
}

type BlockedPeriodWriteQueries interface {
	CreateBlockedPeriod(ctx context.Context, db query.DBTX, arg query.CreateBlockedPeriodParams) error
	DeleteBlockedPeriod(ctx context.Context, db query.DBTX, arg query.DeleteBlockedPeriodParams) (int64, error)
	HasOverlappingBlockedPeriod(ctx context.Context, db query.DBTX, arg query.HasOverlappingBlockedPeriodParams) (bool, error)
}

type BlockedPeriodRepository struct {
	queries BlockedPeriodWriteQueries
	db      query.DBTX
}

func NewBlockedPeriodRepository(queries BlockedPeriodWriteQueries, db query.DBTX) *BlockedPeriodRepository {
	return &BlockedPeriodRepository{queries: queries, db: db}
}

func (r *BlockedPeriodRepository) Create(ctx context.Context, b *schedule.BlockedPeriod) error {
	if err := r.queries.CreateBlockedPeriod(ctx, r.db, converter.BlockedPeriodToInfra(b)); err != nil {
		return infra.WrapRepoErr("failed to create blocked period", err)
	}
	return nil
}

func (r *BlockedPeriodRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	n, err := r.queries.DeleteBlockedPeriod(ctx, r.db, query.DeleteBlockedPeriodParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return infra.WrapRepoErr("failed to delete blocked period", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("blocked period not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BlockedPeriodRepository) HasOverlap(ctx context.Context, ownerID uuid.UUID, iv appointment.Interval) (bool, error) {
	overlap, err := r.queries.HasOverlappingBlockedPeriod(ctx, r.db, query.HasOverlappingBlockedPeriodParams{
		OwnerID:   ownerID,
		StartTime: pgconv.TimeToPgtype(iv.Start()),
		EndTime:   pgconv.TimeToPgtype(iv.End()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check blocked period overlap", err)
	}
	return overlap, nil
}
