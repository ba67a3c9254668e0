package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"appointment-engine/internal/domain/owner"
	"appointment-engine/internal/handler/api"
	"appointment-engine/internal/handler/middleware"
	"appointment-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Appointment  *api.AppointmentHandler
	Calendar     *api.CalendarHandler
	Agent        *api.AgentHandler
	AgentActions *api.AgentActionsHandler
}

type Middlewares struct {
	Logger      *middleware.Logger
	Auth        *middleware.AuthMiddleware
	AgentAuth   *middleware.AgentAuthMiddleware
	RateLimiter middleware.RateLimiter
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw.Logger)
	setupRoutes(engine, cfg, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	writer := []gin.HandlerFunc{mw.Auth.RequireRoleAtLeast(owner.RoleOperator)}

	apiGroup := engine.Group("/api")
	{
		owned := apiGroup.Group("")
		owned.Use(mw.Auth.RequireAuth())
		addRoutes(owned, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.Check},

			{Method: http.MethodPost, Path: "/appointments", Handler: h.Appointment.Book, Mw: writer},
			{Method: http.MethodGet, Path: "/appointments", Handler: h.Appointment.List},
			{Method: http.MethodGet, Path: "/appointments/stats", Handler: h.Appointment.Stats},
			{Method: http.MethodGet, Path: "/appointments/:id", Handler: h.Appointment.Get},
			{Method: http.MethodPost, Path: "/appointments/:id/reschedule", Handler: h.Appointment.Reschedule, Mw: writer},
			{Method: http.MethodPost, Path: "/appointments/:id/cancel", Handler: h.Appointment.Cancel, Mw: writer},
			{Method: http.MethodPost, Path: "/appointments/:id/status", Handler: h.Appointment.UpdateStatus, Mw: writer},

			{Method: http.MethodGet, Path: "/calendar/settings", Handler: h.Calendar.GetSettings},
			{Method: http.MethodPut, Path: "/calendar/settings", Handler: h.Calendar.UpdateSettings, Mw: writer},
			{Method: http.MethodGet, Path: "/calendar/blocked", Handler: h.Calendar.ListBlocked},
			{Method: http.MethodPost, Path: "/calendar/blocked", Handler: h.Calendar.CreateBlocked, Mw: writer},
			{Method: http.MethodDelete, Path: "/calendar/blocked/:id", Handler: h.Calendar.DeleteBlocked, Mw: writer},
			{Method: http.MethodGet, Path: "/calendar/auth-url/:provider", Handler: h.Calendar.AuthURL, Mw: writer},
			{Method: http.MethodPost, Path: "/calendar/connect", Handler: h.Calendar.Connect, Mw: writer},
			{Method: http.MethodGet, Path: "/calendar/integrations", Handler: h.Calendar.ListIntegrations},

			{Method: http.MethodPost, Path: "/agents", Handler: h.Agent.Register, Mw: writer},
			{Method: http.MethodPost, Path: "/agents/:id/rotate-token", Handler: h.Agent.RotateToken, Mw: writer},
		})

		// Voice agents authenticate with their own token; the limit is
		// applied first so bad tokens are throttled too.
		agents := apiGroup.Group("/agent-actions/:agent_id")
		agents.Use(
			middleware.RateLimit(mw.RateLimiter, "agent_id", cfg.RateLimit.FailOpen),
			mw.AgentAuth.RequireAgent(),
		)
		addRoutes(agents, []route{
			{Method: http.MethodPost, Path: "/check-availability", Handler: h.AgentActions.CheckAvailability},
			{Method: http.MethodPost, Path: "/book", Handler: h.AgentActions.Book},
			{Method: http.MethodGet, Path: "/appointments/today", Handler: h.AgentActions.Today},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
