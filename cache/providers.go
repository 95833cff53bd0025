package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"reliefsupply/models"
	"reliefsupply/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// ProvidersKey prefixes the JSON encoded provider rankings, one per generation.
	ProvidersKey = "cache:providers"
	// GenerationKey counts supply writes; rankings are stored under the current value.
	GenerationKey = ProvidersKey + ":gen"
)

// Commands is the subset of the Redis client the cache needs.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// CachedSupplyRepo serves the provider ranking from Redis. Every supply write
// bumps the generation, so a ranking computed before a write is stored under a
// generation nobody reads any more. Redis failures fall through to the wrapped
// repository.
type CachedSupplyRepo struct {
	repository.SupplyRepository

	rdb Commands
	ttl time.Duration
	log logrus.FieldLogger
}

func NewCachedSupplyRepo(repo repository.SupplyRepository, rdb Commands, ttl time.Duration, log logrus.FieldLogger) *CachedSupplyRepo {
	return &CachedSupplyRepo{
		SupplyRepository: repo,
		rdb:              rdb,
		ttl:              ttl,
		log:              log,
	}
}

func entryKey(generation string) string {
	return ProvidersKey + ":" + generation
}

func (c *CachedSupplyRepo) RankProviders(ctx context.Context) ([]models.ProviderSummary, error) {
	generation, err := c.rdb.Get(ctx, GenerationKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		generation = "0"
	case err != nil:
		c.log.WithError(err).Warn("provider cache generation read failed")
		return c.SupplyRepository.RankProviders(ctx)
	}
	key := entryKey(generation)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []models.ProviderSummary
		decodeErr := json.Unmarshal(data, &out)
		if decodeErr == nil {
			return out, nil
		}
		c.log.WithError(decodeErr).Warn("discarding undecodable provider cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.WithError(err).Warn("provider cache read failed")
	}

	out, err := c.SupplyRepository.RankProviders(ctx)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("provider cache write failed")
	}
	return out, nil
}

func (c *CachedSupplyRepo) Create(ctx context.Context, doc models.Document) (*models.InsertAck, error) {
	ack, err := c.SupplyRepository.Create(ctx, doc)
	if err == nil {
		c.invalidate(ctx)
	}
	return ack, err
}

func (c *CachedSupplyRepo) Update(ctx context.Context, id string, patch models.Document) (*models.UpdateAck, error) {
	ack, err := c.SupplyRepository.Update(ctx, id, patch)
	if err == nil && ack.MatchedCount > 0 {
		c.invalidate(ctx)
	}
	return ack, err
}

func (c *CachedSupplyRepo) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	ack, err := c.SupplyRepository.Delete(ctx, id)
	if err == nil && ack.DeletedCount > 0 {
		c.invalidate(ctx)
	}
	return ack, err
}

// invalidate moves readers to a fresh generation; old entries expire on their TTL.
func (c *CachedSupplyRepo) invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, GenerationKey).Err(); err != nil {
		c.log.WithError(err).Warn("provider cache invalidation failed")
	}
}
