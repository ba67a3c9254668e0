package components

import (
	"appointment-engine/internal/handler"
	"appointment-engine/internal/handler/api"
	"appointment-engine/internal/handler/middleware"
	"appointment-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

type routerParams struct {
	fx.In

	Availability *api.AvailabilityHandler
	Appointment  *api.AppointmentHandler
	Calendar     *api.CalendarHandler
	Agent        *api.AgentHandler
	AgentActions *api.AgentActionsHandler

	Logger      *middleware.Logger
	Auth        *middleware.AuthMiddleware
	AgentAuth   *middleware.AgentAuthMiddleware
	RateLimiter middleware.RateLimiter
}

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewAppointmentHandler,
		api.NewCalendarHandler,
		api.NewAgentHandler,
		api.NewAgentActionsHandler,
		middleware.NewAuthMiddleware,
		middleware.NewAgentAuthMiddleware,
	),
	fx.Invoke(registerRoutes),
)

func registerRoutes(engine *gin.Engine, cfg config.Config, p routerParams) {
	handler.NewRouter(engine, cfg, handler.Handlers{
		Availability: p.Availability,
		Appointment:  p.Appointment,
		Calendar:     p.Calendar,
		Agent:        p.Agent,
		AgentActions: p.AgentActions,
	}, handler.Middlewares{
		Logger:      p.Logger,
		Auth:        p.Auth,
		AgentAuth:   p.AgentAuth,
		RateLimiter: p.RateLimiter,
	})
}
