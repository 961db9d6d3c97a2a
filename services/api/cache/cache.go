// Package cache keeps recent prediction results in Redis, keyed by dataset and query.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
)

// Predictions is a Redis-backed prediction cache. A nil *Predictions is a valid, always-missing
// cache.
type Predictions struct {
	rdb       *redis.Client
	ttl       time.Duration
	datasetID string
}

// New connects to the Redis server at url (redis://host:port/db).
func New(ctx context.Context, url, datasetID string, ttl time.Duration) (*Predictions, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Predictions{rdb: rdb, ttl: ttl, datasetID: datasetID}, nil
}

// Key identifies a query against one dataset.
func Key(datasetID string, q predict.Query) string {
	return "twin:predict:" + datasetID + ":" +
		strconv.FormatFloat(q.PowerKW, 'g', -1, 64) + ":" +
		strconv.FormatFloat(q.DES, 'g', -1, 64)
}

// Get returns a cached result. Misses and Redis errors both report ok=false.
func (p *Predictions) Get(ctx context.Context, q predict.Query) (*predict.Result, bool) {
	if p == nil {
		return nil, false
	}
	raw, err := p.rdb.Get(ctx, Key(p.datasetID, q)).Bytes()
	if err != nil {
		return nil, false
	}
	var res predict.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set stores res for q with the configured TTL.
func (p *Predictions) Set(ctx context.Context, q predict.Query, res *predict.Result) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return p.rdb.Set(ctx, Key(p.datasetID, q), data, p.ttl).Err()
}

// Close releases the connection pool.
func (p *Predictions) Close() error {
	if p == nil {
		return nil
	}
	if err := p.rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
