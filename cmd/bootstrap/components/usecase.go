package components

import (
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/usecase"
	"appointment-engine/internal/usecase/commands"
	"appointment-engine/internal/usecase/queries"
	"appointment-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAppointmentUseCase,
		commands.NewCalendarUseCase,
		commands.NewReminderUseCase,
		commands.NewAgentUseCase,
		func(uow shared.UnitOfWork, states commands.OAuthStateStore, cfg config.Config, topics commands.EventTopics, clk clock.Clock) commands.IntegrationCommands {
			return commands.NewIntegrationUseCase(uow, states, cfg.OAuth, topics, clk)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewAppointmentQueries,
		queries.NewCalendarQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
