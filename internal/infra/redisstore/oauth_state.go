package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

const oauthStatePrefix = "oauth:state:"

var ErrStateCollision = errs.New("oauth state already issued")

// OAuthStateStore keeps pending OAuth states until the provider redirects
// back. Each state can be consumed at most once.
type OAuthStateStore struct {
	rdb redis.Cmdable
}

func NewOAuthStateStore(rdb redis.Cmdable) *OAuthStateStore {
	return &OAuthStateStore{rdb: rdb}
}

var _ commands.OAuthStateStore = (*OAuthStateStore)(nil)

func (s *OAuthStateStore) Issue(ctx context.Context, state string, value commands.OAuthState, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "failed to encode oauth state")
	}
	ok, err := s.rdb.SetNX(ctx, oauthStatePrefix+state, b, ttl).Result()
	if err != nil {
		return errs.Wrap(err, "failed to store oauth state")
	}
	if !ok {
		return ErrStateCollision
	}
	return nil
}

func (s *OAuthStateStore) Consume(ctx context.Context, state string) (*commands.OAuthState, bool, error) {
	raw, err := s.rdb.GetDel(ctx, oauthStatePrefix+state).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to consume oauth state")
	}
	var v commands.OAuthState
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, errs.Wrap(err, "failed to decode oauth state")
	}
	return &v, true, nil
}
