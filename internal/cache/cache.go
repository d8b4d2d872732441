// Package cache keeps recent analyses in redis so that re-detecting an
// identical text with identical options skips the engine round-trip.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/analyzer"
	"github.com/imleoo/aigc-check/internal/config"
	"github.com/imleoo/aigc-check/internal/models"
)

// AnalysisCache stores engine analyses keyed by request content.
type AnalysisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to redis per the given configuration. Returns nil (no
// cache) when the cache is disabled.
func New(cfg config.RedisConfig, logger *zap.Logger) *AnalysisCache {
	if !cfg.Enabled {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &AnalysisCache{
		rdb:    rdb,
		ttl:    cfg.TTL,
		logger: logger.Named("cache"),
	}
}

// Key derives the cache key for a request. Options are part of the key:
// the same text analyzed with different toggles is a different analysis.
func Key(req models.DetectionRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Text))
	fmt.Fprintf(h, "|%t|%t|%t|%s",
		req.Options.EnableMultimodal,
		req.Options.EnableStatistics,
		req.Options.EnableSemantic,
		req.Options.Language)
	return "aigc:analysis:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached analysis for a request, or nil on a miss. Cache
// failures degrade to a miss; they never fail the detection.
func (c *AnalysisCache) Get(ctx context.Context, req models.DetectionRequest) *analyzer.Analysis {
	raw, err := c.rdb.Get(ctx, Key(req)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.Error(err))
		}
		return nil
	}
	var analysis analyzer.Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		c.logger.Warn("discarding unreadable cache entry", zap.Error(err))
		return nil
	}
	return &analysis
}

// Set stores an analysis for later re-detections of the same request.
func (c *AnalysisCache) Set(ctx context.Context, req models.DetectionRequest, analysis *analyzer.Analysis) {
	raw, err := json.Marshal(analysis)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, Key(req), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.Error(err))
	}
}

// Close releases the redis connection.
func (c *AnalysisCache) Close() error {
	return c.rdb.Close()
}
