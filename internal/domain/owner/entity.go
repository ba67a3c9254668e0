package owner

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the business account that controls one calendar.
type Owner struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
}

func Reconstruct(id uuid.UUID, name, email string, createdAt time.Time) *Owner {
	return &Owner{id: id, name: name, email: email, createdAt: createdAt}
}

func (o *Owner) ID() uuid.UUID        { return o.id }
func (o *Owner) Name() string         { return o.name }
func (o *Owner) Email() string        { return o.email }
func (o *Owner) CreatedAt() time.Time { return o.createdAt }
