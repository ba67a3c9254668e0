package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/$GOFILE -package=commandsmock

import (
	"context"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/secret"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidAgentToken = errs.New("invalid agent token")

// AgentCredentials carries the plaintext token, which is shown only once.
type AgentCredentials struct {
	Agent *agent.Agent
	Token string
}

type AgentCommands interface {
	Register(ctx context.Context, ownerID uuid.UUID, name string) (*AgentCredentials, error)
	RotateToken(ctx context.Context, ownerID, agentID uuid.UUID) (*AgentCredentials, error)
	Authenticate(ctx context.Context, agentID uuid.UUID, token string) (*agent.Agent, error)
}

type agentUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAgentUseCase(uow shared.UnitOfWork, clock clock.Clock) AgentCommands {
	return &agentUseCaseImpl{uow: uow, clock: clock}
}

func (u *agentUseCaseImpl) Register(ctx context.Context, ownerID uuid.UUID, name string) (*AgentCredentials, error) {
	plain, hash, err := secret.NewToken()
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue agent token")
	}
	a, err := agent.NewAgent(ownerID, name, hash, u.clock.Now())
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureOwner(ctx, tx.Reads(), ownerID); err != nil {
			return err
		}
		if err := tx.Agents().Create(ctx, a); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AgentCredentials{Agent: a, Token: plain}, nil
}

func (u *agentUseCaseImpl) RotateToken(ctx context.Context, ownerID, agentID uuid.UUID) (*AgentCredentials, error) {
	plain, hash, err := secret.NewToken()
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue agent token")
	}

	var rotated *agent.Agent
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Reads().Agent(ctx, agentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return agent.ErrAgentNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if a.OwnerID() != ownerID {
			return agent.ErrAgentNotFound
		}
		a.RotateToken(hash, u.clock.Now())
		if err := tx.Agents().UpdateToken(ctx, a); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return agent.ErrAgentNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		rotated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AgentCredentials{Agent: rotated, Token: plain}, nil
}

func (u *agentUseCaseImpl) Authenticate(ctx context.Context, agentID uuid.UUID, token string) (*agent.Agent, error) {
	if token == "" {
		return nil, ErrInvalidAgentToken
	}
	a, err := u.uow.CommandReads().Agent(ctx, agentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, agent.ErrAgentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !a.IsActive() {
		return nil, agent.ErrAgentInactive
	}
	if err := secret.Compare(a.TokenHash(), token); err != nil {
		return nil, errs.Mark(err, ErrInvalidAgentToken)
	}
	return a, nil
}
