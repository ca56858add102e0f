package service

import (
	"context"
	"time"

	"gatherly-api/core/cache"
	"gatherly-api/core/constants"

	"github.com/google/uuid"
)

// RedisTokenStore backs live invite tokens with redis TTL keys.
type RedisTokenStore struct{}

func NewRedisTokenStore() *RedisTokenStore {
	return &RedisTokenStore{}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, invitationID uuid.UUID, ttl time.Duration) error {
	return cache.Set(ctx, constants.RedisKeyInvitationToken+token, invitationID.String(), ttl)
}

func (s *RedisTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	_, err := cache.Get(ctx, constants.RedisKeyInvitationToken+token)
	if err != nil {
		if err == cache.Nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	return cache.Delete(ctx, constants.RedisKeyInvitationToken+token)
}
