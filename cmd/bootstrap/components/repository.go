package components

import (
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/readstore"
	"appointment-engine/internal/infra/uow"
	"appointment-engine/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Write-side repositories are built per transaction by the unit of work;
// only the read stores live in the container.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewSQLQueries,
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			NewScheduleReadStore,
			fx.As(new(queries.ScheduleReadStore)),
		),
		fx.Annotate(
			NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *query.Queries {
	return query.New()
}

func NewDBTX(pool *pgxpool.Pool) query.DBTX {
	return pool
}

func NewScheduleReadStore(q *query.Queries, pool *pgxpool.Pool) *readstore.ScheduleReadStore {
	return readstore.NewScheduleReadStore(q, pool)
}

func NewAppointmentReadStore(q *query.Queries, db query.DBTX) *readstore.AppointmentReadStore {
	return readstore.NewAppointmentReadStore(q, db)
}
