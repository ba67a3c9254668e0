package api

import (
	"fmt"
	"net/http"

	reqdto "appointment-engine/internal/handler/dto/request"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/handler/middleware"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/timeutil"
	"appointment-engine/internal/usecase/commands"
	"appointment-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// agentSlotLimit is how many open slots a voice agent reads out.
const agentSlotLimit = 10

type AgentActionsHandler struct {
	availability queries.AvailabilityQueries
	appointments queries.AppointmentQueries
	calendar     queries.CalendarQueries
	cmds         commands.AppointmentCommands
	clock        clock.Clock
}

func NewAgentActionsHandler(
	availability queries.AvailabilityQueries,
	appointments queries.AppointmentQueries,
	calendar queries.CalendarQueries,
	cmds commands.AppointmentCommands,
	clock clock.Clock,
) *AgentActionsHandler {
	return &AgentActionsHandler{
		availability: availability,
		appointments: appointments,
		calendar:     calendar,
		cmds:         cmds,
		clock:        clock,
	}
}

// @Summary Agent: check availability
// @Description First open slots of a local date in the owner's timezone
// @Tags agent-actions
// @Accept json
// @Produce json
// @Param X-Agent-Token header string true "Agent token"
// @Param agent_id path string true "Agent ID"
// @Param request body reqdto.AgentCheckAvailabilityRequest true "Date and duration"
// @Success 200 {object} resdto.AgentAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /agent-actions/{agent_id}/check-availability [post]
func (h *AgentActionsHandler) CheckAvailability(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	var req reqdto.AgentCheckAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	date, duration, err := req.Parse()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	settings, err := h.calendar.Settings(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	result, err := h.availability.ForDate(c.Request.Context(), ownerID, date, duration, agentSlotLimit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAgentAvailability(req.Date, settings.Location(), result))
}

// @Summary Agent: book appointment
// @Tags agent-actions
// @Accept json
// @Produce json
// @Param X-Agent-Token header string true "Agent token"
// @Param Idempotency-Key header string false "Client idempotency key"
// @Param agent_id path string true "Agent ID"
// @Param request body reqdto.AgentBookRequest true "Booking"
// @Success 201 {object} resdto.AgentBookResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /agent-actions/{agent_id}/book [post]
func (h *AgentActionsHandler) Book(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	a, ok := middleware.GetAgent(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrInvalidAgentToken, "Unauthorized", nil)
		return
	}
	var req reqdto.AgentBookRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.calendar.Settings(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	in, err := req.ToInput(ownerID, a.ID(), settings.Location(), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	result, err := h.cmds.Book(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		c.Header(ReplayedHeader, "true")
		status = http.StatusOK
	}
	c.JSON(status, resdto.AgentBookResponse{
		Success:         true,
		AppointmentID:   result.Appointment.ID(),
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		CustomerName:    req.CustomerName,
		Status:          result.Appointment.Status().String(),
		Message: fmt.Sprintf("Appointment booked successfully for %s on %s at %s",
			req.CustomerName, req.Date, req.StartTime),
	})
}

// @Summary Agent: today's appointments
// @Description Active appointments of the owner's current local date
// @Tags agent-actions
// @Produce json
// @Param X-Agent-Token header string true "Agent token"
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} resdto.AgentTodayResponse
// @Failure 401 {object} httperr.Response
// @Router /agent-actions/{agent_id}/appointments/today [get]
func (h *AgentActionsHandler) Today(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	settings, err := h.calendar.Settings(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	views, err := h.appointments.Today(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	loc := settings.Location()
	date := h.clock.Now().In(loc).Format(timeutil.DateLayout)
	c.JSON(http.StatusOK, resdto.FromToday(date, loc, views))
}
