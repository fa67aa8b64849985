// Package cache provides a Redis-backed store for normalized search
// results so repeated identical searches skip the upstream round trip.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripnest/offer-engine/internal/domain"
)

// ResultCache stores normalized offers keyed by the search that produced
// them. Implementations must be safe for concurrent use.
type ResultCache interface {
	Get(ctx context.Context, query domain.SearchQuery) ([]domain.FlightOffer, bool)
	Set(ctx context.Context, query domain.SearchQuery, offers []domain.FlightOffer) error
	Close() error
}

// RedisCache is the Redis-backed ResultCache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds connection settings for the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get returns the cached offers for a query. Any cache failure reads as a
// miss; the caller falls through to the provider.
func (c *RedisCache) Get(ctx context.Context, query domain.SearchQuery) ([]domain.FlightOffer, bool) {
	data, err := c.client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		return nil, false
	}

	var offers []domain.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}
	return offers, true
}

// Set stores offers for a query under the configured TTL.
func (c *RedisCache) Set(ctx context.Context, query domain.SearchQuery, offers []domain.FlightOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(query), data, c.ttl).Err()
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoOpCache satisfies ResultCache without storing anything. Used when
// Redis is not configured.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache { return &NoOpCache{} }

func (c *NoOpCache) Get(ctx context.Context, query domain.SearchQuery) ([]domain.FlightOffer, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, query domain.SearchQuery, offers []domain.FlightOffer) error {
	return nil
}

func (c *NoOpCache) Close() error { return nil }

// cacheKey hashes the fields that define a search's identity. Two queries
// that differ in any of them must never share a cache slot.
func cacheKey(query domain.SearchQuery) string {
	keyData := struct {
		TripType      domain.TripType
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		Segments      []domain.TripSegment
		Travellers    domain.TravellerCounts
	}{
		TripType:      query.TripType,
		Origin:        query.Origin,
		Destination:   query.Destination,
		DepartureDate: query.DepartureDate,
		ReturnDate:    query.ReturnDate,
		Segments:      query.Segments,
		Travellers:    query.Travellers,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "offers:" + hex.EncodeToString(hash[:])
}
