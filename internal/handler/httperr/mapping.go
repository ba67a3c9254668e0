package httperr

import (
	"net/http"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ConstraintDetail struct {
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

type mapping struct {
	target error
	status int
	msg    string
	// explain exposes err.Error() as detail.message.
	explain bool
}

// Order matters: the first sentinel found in the chain wins.
var table = []mapping{
	{errs.ErrInvalidTimeRange, http.StatusBadRequest, "Invalid time range", true},
	{errs.ErrOwnerNotFound, http.StatusNotFound, "Owner not found", false},
	{errs.ErrAppointmentNotFound, http.StatusNotFound, "Appointment not found", false},
	{errs.ErrBlockedPeriodMissing, http.StatusNotFound, "Blocked period not found", false},
	{agent.ErrAgentNotFound, http.StatusNotFound, "Agent not found", false},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Slot unavailable", false},
	{errs.ErrInvalidTransition, http.StatusConflict, "Invalid status transition", false},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Request with this Idempotency-Key is still in progress", false},
	{errs.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request", false},
	{commands.ErrInvalidAgentToken, http.StatusUnauthorized, "Invalid agent token", false},
	{agent.ErrAgentInactive, http.StatusForbidden, "Agent is inactive", false},
	{commands.ErrInvalidOAuthState, http.StatusBadRequest, "Invalid or expired OAuth state", false},
	{commands.ErrProviderNotConfigured, http.StatusBadRequest, "Calendar provider is not configured", false},
	{errs.ErrDomainValidation, http.StatusBadRequest, "Invalid request", true},
}

// Status resolves the HTTP status, public message and optional detail for err.
func Status(err error) (int, string, any) {
	if cv, ok := schedule.AsViolation(err); ok {
		return http.StatusBadRequest, "Booking constraint violated", ConstraintDetail{
			Reason: cv.Reason.String(),
			Detail: cv.Detail,
		}
	}
	for _, m := range table {
		if errs.Is(err, m.target) {
			if m.explain {
				return m.status, m.msg, gin.H{"message": err.Error()}
			}
			return m.status, m.msg, nil
		}
	}
	return http.StatusInternalServerError, "Internal server error", nil
}

func AbortWithDomainError(c *gin.Context, err error) {
	status, msg, detail := Status(err)
	AbortWithError(c, status, err, msg, detail)
}
