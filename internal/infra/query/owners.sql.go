package query

import (
	"context"

	"github.com/google/uuid"
)

const getOwner = `-- name: GetOwner :one
SELECT id, name, email, created_at FROM owners WHERE id = $1`

func (q *Queries) GetOwner(ctx context.Context, db DBTX, id uuid.UUID) (Owner, error) {
	var i Owner
	err := db.QueryRow(ctx, getOwner, id).Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt)
	return i, err
}

const createOwner = `-- name: CreateOwner :exec
INSERT INTO owners (id, name, email) VALUES ($1, $2, $3)`

type CreateOwnerParams struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// CreateOwner exists for seeding; owner accounts are provisioned upstream.
func (q *Queries) CreateOwner(ctx context.Context, db DBTX, arg CreateOwnerParams) error {
	_, err := db.Exec(ctx, createOwner, arg.ID, arg.Name, arg.Email)
	return err
}
