package repository

import (
	"context"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/repository/converter"
	"appointment-engine/internal/pkg/pgconv"
)

type AgentWriteQueries interface {
	CreateAgent(ctx context.Context, db query.DBTX, arg query.CreateAgentParams) error
	UpdateAgentToken(ctx context.Context, db query.DBTX, arg query.UpdateAgentTokenParams) (int64, error)
}

type AgentRepository struct {
	queries AgentWriteQueries
	db      query.DBTX
}

func NewAgentRepository(queries AgentWriteQueries, db query.DBTX) *AgentRepository {
	return &AgentRepository{queries: queries, db: db}
}

func (r *AgentRepository) Create(ctx context.Context, a *agent.Agent) error {
	if err := r.queries.CreateAgent(ctx, r.db, converter.AgentToInfra(a)); err != nil {
		return infra.WrapRepoErr("failed to create agent", err)
	}
	return nil
}

func (r *AgentRepository) UpdateToken(ctx context.Context, a *agent.Agent) error {
	n, err := r.queries.UpdateAgentToken(ctx, r.db, query.UpdateAgentTokenParams{
		ID:        a.ID(),
		OwnerID:   a.OwnerID(),
		TokenHash: a.TokenHash(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update agent token", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("agent not found", nil, infra.KindNotFound)
	}
	return nil
}

type IntegrationWriteQueries interface {
	UpsertCalendarIntegration(ctx context.Context, db query.DBTX, arg query.UpsertCalendarIntegrationParams) (query.CalendarIntegration, error)
}

type IntegrationRepository struct {
	queries IntegrationWriteQueries
	db      query.DBTX
}

func NewIntegrationRepository(queries IntegrationWriteQueries, db query.DBTX) *IntegrationRepository {
	return &IntegrationRepository{queries: queries, db: db}
}

func (r *IntegrationRepository) Upsert(ctx context.Context, i *integration.Integration) (*integration.Integration, error) {
	row, err := r.queries.UpsertCalendarIntegration(ctx, r.db, query.UpsertCalendarIntegrationParams{
		ID:       i.ID(),
		OwnerID:  i.OwnerID(),
		Provider: i.Provider().String(),
		Status:   string(i.Status()),
		AuthCode: pgconv.TextOrNull(i.AuthCode()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to save calendar integration", err)
	}
	return converter.IntegrationToDomain(row), nil
}
