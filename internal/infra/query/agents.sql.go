package query

import (
	"context"

	"github.com/google/uuid"
)

const createAgent = `-- name: CreateAgent :exec
INSERT INTO agents (id, owner_id, name, token_hash, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type CreateAgentParams = Agent

func (q *Queries) CreateAgent(ctx context.Context, db DBTX, arg CreateAgentParams) error {
	_, err := db.Exec(ctx, createAgent, arg.ID, arg.OwnerID, arg.Name, arg.TokenHash, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getAgent = `-- name: GetAgent :one
SELECT id, owner_id, name, token_hash, is_active, created_at, updated_at
FROM agents
WHERE id = $1`

func (q *Queries) GetAgent(ctx context.Context, db DBTX, id uuid.UUID) (Agent, error) {
	var i Agent
	err := db.QueryRow(ctx, getAgent, id).Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.TokenHash,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateAgentToken = `-- name: UpdateAgentToken :execrows
UPDATE agents SET token_hash = $3, updated_at = now()
WHERE id = $1 AND owner_id = $2`

type UpdateAgentTokenParams struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	TokenHash string
}

func (q *Queries) UpdateAgentToken(ctx context.Context, db DBTX, arg UpdateAgentTokenParams) (int64, error) {
	result, err := db.Exec(ctx, updateAgentToken, arg.ID, arg.OwnerID, arg.TokenHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
