package api

import (
	"net/http"

	reqdto "appointment-engine/internal/handler/dto/request"
	resdto "appointment-engine/internal/handler/dto/response"
	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	agents commands.AgentCommands
}

func NewAgentHandler(agents commands.AgentCommands) *AgentHandler {
	return &AgentHandler{agents: agents}
}

// @Summary Register voice agent
// @Description The plaintext token is returned only in this response
// @Tags agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAgentRequest true "Agent"
// @Success 201 {object} resdto.AgentCredentialsResponse
// @Failure 400 {object} httperr.Response
// @Router /agents [post]
func (h *AgentHandler) Register(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	var req reqdto.CreateAgentRequest
	if !bindJSON(c, &req) {
		return
	}
	creds, err := h.agents.Register(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAgentCredentials(creds.Agent, creds.Token))
}

// @Summary Rotate agent token
// @Tags agents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} resdto.AgentCredentialsResponse
// @Failure 404 {object} httperr.Response
// @Router /agents/{id}/rotate-token [post]
func (h *AgentHandler) RotateToken(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Invalid agent id")
	if !ok {
		return
	}
	creds, err := h.agents.RotateToken(c.Request.Context(), ownerID, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAgentCredentials(creds.Agent, creds.Token))
}
