package converter

import (
	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/domain/owner"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/pkg/pgconv"
)

func OwnerToDomain(row query.Owner) *owner.Owner {
	return owner.Reconstruct(row.ID, row.Name, row.Email, row.CreatedAt.Time.UTC())
}

func AgentToInfra(a *agent.Agent) query.CreateAgentParams {
	return query.CreateAgentParams{
		ID:        a.ID(),
		OwnerID:   a.OwnerID(),
		Name:      a.Name(),
		TokenHash: a.TokenHash(),
		IsActive:  a.IsActive(),
		CreatedAt: pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AgentToDomain(row query.Agent) *agent.Agent {
	return agent.Reconstruct(row.ID, row.OwnerID, row.Name, row.TokenHash, row.IsActive, row.CreatedAt.Time.UTC(), row.UpdatedAt.Time.UTC())
}

func IntegrationToDomain(row query.CalendarIntegration) *integration.Integration {
	return integration.Reconstruct(
		row.ID,
		row.OwnerID,
		integration.Provider(row.Provider),
		integration.Status(row.Status),
		pgconv.TextValue(row.AuthCode),
		pgconv.TimePtrFromPgtype(row.LastSyncAt),
		row.CreatedAt.Time.UTC(),
		row.UpdatedAt.Time.UTC(),
	)
}
