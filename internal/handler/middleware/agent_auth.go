package middleware

import (
	"net/http"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AgentTokenHeader = "X-Agent-Token"
	ctxAgentKey      = "agent"
)

type AgentAuthMiddleware struct {
	agents commands.AgentCommands
}

func NewAgentAuthMiddleware(agents commands.AgentCommands) *AgentAuthMiddleware {
	return &AgentAuthMiddleware{agents: agents}
}

// RequireAgent authenticates the :agent_id path parameter against
// X-Agent-Token and exposes the agent's owner like an owner session.
func (m *AgentAuthMiddleware) RequireAgent() gin.HandlerFunc {
	return func(c *gin.Context) {
		agentID, err := uuid.Parse(c.Param("agent_id"))
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid agent id", nil)
			return
		}
		token := c.GetHeader(AgentTokenHeader)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrInvalidAgentToken, "Agent token required", nil)
			return
		}

		a, err := m.agents.Authenticate(c.Request.Context(), agentID, token)
		if err != nil {
			httperr.AbortWithDomainError(c, err)
			return
		}

		c.Set(ctxAgentKey, a)
		c.Set(ctxOwnerIDKey, a.OwnerID())
		c.Set(ctxClaimsKey, map[string]any{
			"owner_id": a.OwnerID().String(),
			"agent_id": a.ID().String(),
		})
		c.Next()
	}
}

func GetAgent(c *gin.Context) (*agent.Agent, bool) {
	v, exists := c.Get(ctxAgentKey)
	if !exists {
		return nil, false
	}
	a, ok := v.(*agent.Agent)
	return a, ok
}
