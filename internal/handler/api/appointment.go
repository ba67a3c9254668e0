package api

import (
	"net/http"

	"appointment-engine/internal/domain/appointment"
	reqdto "appointment-engine/internal/handler/dto/request"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/usecase/commands"
	"appointment-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

type AppointmentHandler struct {
	cmds commands.AppointmentCommands
	q    queries.AppointmentQueries
}

func NewAppointmentHandler(cmds commands.AppointmentCommands, q queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{cmds: cmds, q: q}
}

// @Summary Book appointment
// @Description Books an interval. A repeated Idempotency-Key replays the first result.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Client idempotency key (max 255 chars)"
// @Param request body reqdto.BookAppointmentRequest true "Booking request"
// @Success 201 {object} resdto.AppointmentResponse
// @Success 200 {object} resdto.AppointmentResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	var req reqdto.BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(ownerID, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	result, err := h.cmds.Book(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	renderBooked(c, result)
}

func renderBooked(c *gin.Context, result *commands.BookResult) {
	res, err := resdto.FromAppointmentView(queries.NewAppointmentView(result.Appointment))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	if result.Replayed {
		c.Header(ReplayedHeader, "true")
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary List appointments
// @Description Keyset-paginated, newest first
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param from query string false "Start time lower bound (RFC3339)"
// @Param to query string false "Start time upper bound (RFC3339)"
// @Param limit query int false "Max items (default 20)"
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	var filter queries.AppointmentFilter
	if raw := c.Query("status"); raw != "" {
		st, err := appointment.ParseStatus(raw)
		if err != nil {
			httperr.AbortWithDomainError(c, err)
			return
		}
		filter.Status = &st
	}
	if filter.From, ok = optionalInstant(c, "from"); !ok {
		return
	}
	if filter.To, ok = optionalInstant(c, "to"); !ok {
		return
	}
	limit, ok := queryInt(c, "limit", queries.DefaultListLimit)
	if !ok {
		return
	}
	var cursor *queries.Cursor
	if after := c.Query("cursor"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	views, next, err := h.q.List(c.Request.Context(), ownerID, filter, cursor, queries.ValidateLimit(limit))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	items, err := resdto.FromAppointmentViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp := resdto.AppointmentListResponse{Appointments: items}
	if next != nil {
		resp.NextCursor = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Invalid appointment id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), ownerID, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.renderView(c, view)
}

// @Summary Reschedule appointment
// @Description Moves the appointment in place; the id is kept
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RescheduleRequest true "New interval"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Invalid appointment id")
	if !ok {
		return
	}
	var req reqdto.RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(ownerID, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	a, err := h.cmds.Reschedule(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.renderView(c, queries.NewAppointmentView(a))
}

// @Summary Cancel appointment
// @Description Soft delete; the interval becomes bookable again
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.CancelRequest false "Cancellation reason"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Invalid appointment id")
	if !ok {
		return
	}
	var req reqdto.CancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	a, err := h.cmds.Cancel(c.Request.Context(), req.ToInput(ownerID, id))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.renderView(c, queries.NewAppointmentView(a))
}

// @Summary Update appointment status
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateStatusRequest true "Target status"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/status [post]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Invalid appointment id")
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	to, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	a, err := h.cmds.UpdateStatus(c.Request.Context(), ownerID, id, to)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.renderView(c, queries.NewAppointmentView(a))
}

// @Summary Appointment statistics
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start time lower bound (RFC3339)"
// @Param to query string false "Start time upper bound (RFC3339)"
// @Success 200 {object} resdto.AppointmentStatsResponse
// @Failure 400 {object} httperr.Response
// @Router /appointments/stats [get]
func (h *AppointmentHandler) Stats(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	from, ok := optionalInstant(c, "from")
	if !ok {
		return
	}
	to, ok := optionalInstant(c, "to")
	if !ok {
		return
	}
	stats, err := h.q.Stats(c.Request.Context(), ownerID, from, to)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromAppointmentStats(stats)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AppointmentHandler) renderView(c *gin.Context, view *queries.AppointmentView) {
	res, err := resdto.FromAppointmentView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
