package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/$GOFILE -package=commandsmock

import (
	"context"
	"net/url"

	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/secret"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const oauthStateBytes = 32

var (
	ErrInvalidOAuthState    = errs.New("invalid or expired oauth state")
	ErrProviderNotConfigured = errs.New("calendar provider is not configured")
)

type AuthURL struct {
	URL   string
	State string
}

type IntegrationCommands interface {
	AuthURL(ctx context.Context, ownerID uuid.UUID, provider integration.Provider) (*AuthURL, error)
	// Connect consumes the state once and stores the authorization code for
	// the sync worker.
	Connect(ctx context.Context, ownerID uuid.UUID, provider integration.Provider, state, code string) (*integration.Integration, error)
}

type integrationUseCaseImpl struct {
	uow    shared.UnitOfWork
	states OAuthStateStore
	oauth  config.OAuthConfig
	topics EventTopics
	clock  clock.Clock
}

func NewIntegrationUseCase(
	uow shared.UnitOfWork,
	states OAuthStateStore,
	oauth config.OAuthConfig,
	topics EventTopics,
	clock clock.Clock,
) IntegrationCommands {
	return &integrationUseCaseImpl{
		uow:    uow,
		states: states,
		oauth:  oauth,
		topics: topics,
		clock:  clock,
	}
}

func (u *integrationUseCaseImpl) AuthURL(ctx context.Context, ownerID uuid.UUID, provider integration.Provider) (*AuthURL, error) {
	state, err := secret.RandomURLSafe(oauthStateBytes)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate oauth state")
	}
	authURL, err := u.buildAuthURL(provider, state)
	if err != nil {
		return nil, err
	}
	if err := u.states.Issue(ctx, state, OAuthState{OwnerID: ownerID, Provider: provider}, u.oauth.StateTTL); err != nil {
		return nil, errs.Wrap(err, "failed to store oauth state")
	}
	return &AuthURL{URL: authURL, State: state}, nil
}

func (u *integrationUseCaseImpl) Connect(ctx context.Context, ownerID uuid.UUID, provider integration.Provider, state, code string) (*integration.Integration, error) {
	if state == "" || code == "" {
		return nil, errs.Mark(errs.New("state and code are required"), errs.ErrDomainValidation)
	}
	stored, found, err := u.states.Consume(ctx, state)
	if err != nil {
		return nil, errs.Wrap(err, "failed to consume oauth state")
	}
	if !found || stored.OwnerID != ownerID || stored.Provider != provider {
		return nil, ErrInvalidOAuthState
	}

	now := u.clock.Now()
	pending := integration.NewPending(ownerID, provider, code, now)

	var saved *integration.Integration
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureOwner(ctx, tx.Reads(), ownerID); err != nil {
			return err
		}
		saved, err = tx.Integrations().Upsert(ctx, pending)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		ev := IntegrationEvent{
			EventID:       uuid.New(),
			Type:          EventIntegrationConnected,
			OccurredAt:    now.UTC(),
			IntegrationID: saved.ID(),
			OwnerID:       ownerID,
			Provider:      provider.String(),
			AuthCode:      code,
		}
		if err := publish(ctx, tx, ev.Type, saved.ID(), ev, u.topics.CalendarSync); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (u *integrationUseCaseImpl) buildAuthURL(provider integration.Provider, state string) (string, error) {
	redirect := u.oauth.RedirectBaseURL + "/calendar/callback"

	var base string
	q := url.Values{}
	switch provider {
	case integration.ProviderGoogle:
		if u.oauth.GoogleClientID == "" {
			return "", ErrProviderNotConfigured
		}
		base = "https://accounts.google.com/o/oauth2/v2/auth"
		q.Set("client_id", u.oauth.GoogleClientID)
		q.Set("scope", "https://www.googleapis.com/auth/calendar")
		q.Set("access_type", "offline")
		q.Set("prompt", "consent")
	case integration.ProviderOutlook:
		if u.oauth.MicrosoftClientID == "" {
			return "", ErrProviderNotConfigured
		}
		base = "https://login.microsoftonline.com/common/oauth2/v2.0/authorize"
		q.Set("client_id", u.oauth.MicrosoftClientID)
		q.Set("scope", "Calendars.ReadWrite offline_access")
	default:
		return "", integration.ErrUnknownProvider
	}
	q.Set("redirect_uri", redirect)
	q.Set("response_type", "code")
	q.Set("state", state)
	return base + "?" + q.Encode(), nil
}
