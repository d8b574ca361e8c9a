package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// cachedRepository is a read-through Redis cache in front of a Repository.
// Cache failures are logged and never fail the request.
type cachedRepository struct {
	Repository
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

type cachedUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCachedRepository wraps repo with a Redis cache on GetByID.
func NewCachedRepository(repo Repository, client *redis.Client, ttl time.Duration, logger zerolog.Logger) Repository {
	return &cachedRepository{
		Repository: repo,
		client:     client,
		ttl:        ttl,
		logger:     logger.With().Str("component", "user_cache").Logger(),
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (r *cachedRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	val, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if err := json.Unmarshal(val, &cu); err == nil {
			return &User{ID: cu.ID, Name: cu.Name, Email: cu.Email, CreatedAt: cu.CreatedAt}, nil
		}
		r.logger.Warn().Int64("user_id", id).Msg("discarding malformed cache entry")
	case !errors.Is(err, redis.Nil):
		r.logger.Warn().Err(err).Int64("user_id", id).Msg("cache read failed")
	}

	u, err := r.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *cachedRepository) Update(ctx context.Context, u *User) error {
	if err := r.Repository.Update(ctx, u); err != nil {
		return err
	}
	r.evict(ctx, u.ID)
	return nil
}

func (r *cachedRepository) Delete(ctx context.Context, id int64) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *cachedRepository) store(ctx context.Context, u *User) {
	data, err := json.Marshal(cachedUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKey(u.ID), data, r.ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Int64("user_id", u.ID).Msg("cache write failed")
	}
}

func (r *cachedRepository) evict(ctx context.Context, id int64) {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		r.logger.Warn().Err(err).Int64("user_id", id).Msg("cache evict failed")
	}
}

// NewRedisClient creates a Redis client for the given address.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
