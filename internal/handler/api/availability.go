package api

import (
	"net/http"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errRangeRequired = errs.Mark(errs.New("from and to are required"), errs.ErrInvalidTimeRange)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check availability
// @Description Annotated slot grid for [from, to). Timestamps must carry a UTC offset.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Param duration query int false "Slot duration in minutes, 1 to 1440 (defaults to settings)"
// @Param available_only query bool false "Drop unavailable slots"
// @Param limit query int false "Max slots returned"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
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
	if from == nil || to == nil {
		httperr.AbortWithDomainError(c, errRangeRequired)
		return
	}
	rng, err := appointment.NewInterval(*from, *to)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	duration, ok := queryInt(c, "duration", 0)
	if !ok {
		return
	}
	if duration < 0 || duration > schedule.MaxSlotMinutes {
		httperr.AbortWithError(c, http.StatusBadRequest, schedule.ErrInvalidQueryDuration, "Invalid duration", nil)
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	result, err := h.q.Check(c.Request.Context(), ownerID, queries.AvailabilityRequest{
		Range:         rng,
		Duration:      time.Duration(duration) * time.Minute,
		AvailableOnly: c.Query("available_only") == "true",
		Limit:         limit,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(result))
}
