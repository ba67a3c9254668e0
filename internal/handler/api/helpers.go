package api

import (
	"net/http"
	"strconv"
	"time"

	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/handler/middleware"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/ptr"
	"appointment-engine/internal/pkg/timeutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingOwner = errs.New("owner missing from context")

func ownerFromContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingOwner, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return ownerID, true
}

func pathUUID(c *gin.Context, name, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
		return uuid.Nil, false
	}
	return id, true
}

// optionalInstant parses an RFC3339 query parameter; absent means nil.
func optionalInstant(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := timeutil.ParseInstant(raw)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return nil, false
	}
	return ptr.Of(t), true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return 0, false
	}
	return v, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", gin.H{"message": err.Error()})
		return false
	}
	return true
}
