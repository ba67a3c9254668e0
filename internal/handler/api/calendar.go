package api

import (
	"net/http"

	"appointment-engine/internal/domain/integration"
	reqdto "appointment-engine/internal/handler/dto/request"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/usecase/commands"
	"appointment-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	cmds         commands.CalendarCommands
	integrations commands.IntegrationCommands
	q            queries.CalendarQueries
}

func NewCalendarHandler(cmds commands.CalendarCommands, integrations commands.IntegrationCommands, q queries.CalendarQueries) *CalendarHandler {
	return &CalendarHandler{cmds: cmds, integrations: integrations, q: q}
}

// @Summary Get calendar settings
// @Description Returns the stored settings, or the defaults when none are stored
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CalendarSettingsResponse
// @Router /calendar/settings [get]
func (h *CalendarHandler) GetSettings(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	s, err := h.q.Settings(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettings(s))
}

// @Summary Replace calendar settings
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CalendarSettingsRequest true "Settings"
// @Success 200 {object} resdto.CalendarSettingsResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar/settings [put]
func (h *CalendarHandler) UpdateSettings(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	var req reqdto.CalendarSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	s, err := h.cmds.UpdateSettings(c.Request.Context(), ownerID, in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettings(s))
}

// @Summary List blocked periods
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param from query string false "Lower bound (RFC3339)"
// @Param to query string false "Upper bound (RFC3339)"
// @Success 200 {array} resdto.BlockedPeriodResponse
// @Router /calendar/blocked [get]
func (h *CalendarHandler) ListBlocked(c *gin.Context) {
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
	items, err := h.q.BlockedPeriods(c.Request.Context(), ownerID, from, to)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBlockedPeriods(items))
}

// @Summary Block a period
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BlockedPeriodRequest true "Blocked period"
// @Success 201 {object} resdto.BlockedPeriodResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar/blocked [post]
func (h *CalendarHandler) CreateBlocked(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	var req reqdto.BlockedPeriodRequest
	if !bindJSON(c, &req) {
		return
	}
	iv, err := req.ToInterval()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	b, err := h.cmds.CreateBlockedPeriod(c.Request.Context(), ownerID, iv, req.Reason)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBlockedPeriod(b))
}

// @Summary Delete a blocked period
// @Tags calendar
// @Security BearerAuth
// @Param id path string true "Blocked period ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /calendar/blocked/{id} [delete]
func (h *CalendarHandler) DeleteBlocked(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Invalid blocked period id")
	if !ok {
		return
	}
	if err := h.cmds.DeleteBlockedPeriod(c.Request.Context(), ownerID, id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Calendar OAuth URL
// @Description Issues a single-use state (10 minute TTL) and the provider consent URL
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param provider path string true "google or outlook"
// @Success 200 {object} resdto.AuthURLResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar/auth-url/{provider} [get]
func (h *CalendarHandler) AuthURL(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	provider, err := integration.ParseProvider(c.Param("provider"))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	u, err := h.integrations.AuthURL(c.Request.Context(), ownerID, provider)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AuthURLResponse{AuthURL: u.URL, State: u.State})
}

// @Summary Connect calendar
// @Description Consumes the OAuth state and records the authorization code for the sync worker
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConnectCalendarRequest true "OAuth callback values"
// @Success 200 {object} resdto.IntegrationResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar/connect [post]
func (h *CalendarHandler) Connect(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	var req reqdto.ConnectCalendarRequest
	if !bindJSON(c, &req) {
		return
	}
	provider, err := integration.ParseProvider(req.Provider)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	i, err := h.integrations.Connect(c.Request.Context(), ownerID, provider, req.State, req.Code)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromIntegration(i))
}

// @Summary List calendar integrations
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.IntegrationResponse
// @Router /calendar/integrations [get]
func (h *CalendarHandler) ListIntegrations(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	items, err := h.q.Integrations(c.Request.Context(), ownerID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromIntegrations(items))
}
