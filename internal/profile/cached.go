package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a cached profile is served before refetching.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Cache stores raw profile documents keyed by username.
type Cache interface {
	GetFreshProfile(ctx context.Context, username string, maxAge time.Duration) ([]byte, error)
	UpsertProfile(ctx context.Context, username string, document []byte) error
}

// CachedSource wraps a Source with a profile cache.
type CachedSource struct {
	source Source
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSource creates a cached source. A zero ttl uses DefaultCacheTTL.
func NewCachedSource(source Source, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{source: source, cache: cache, ttl: ttl, logger: logger}
}

// FetchProfile returns a fresh cached record when available, otherwise fetches
// from the wrapped source and stores the result. Cache failures never fail the fetch.
func (s *CachedSource) FetchProfile(ctx context.Context, username string) (*RawProfile, error) {
	doc, err := s.cache.GetFreshProfile(ctx, username, s.ttl)
	if err != nil {
		s.logger.Warn("profile cache lookup failed", zap.String("username", username), zap.Error(err))
	} else if doc != nil {
		var raw RawProfile
		if err := json.Unmarshal(doc, &raw); err == nil {
			return &raw, nil
		}
		s.logger.Warn("discarding unreadable cached profile", zap.String("username", username))
	}

	raw, err := s.source.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &FetchError{Username: username, Message: "empty record", Cause: ErrProfileNotFound}
	}

	doc, err = json.Marshal(raw)
	if err == nil {
		err = s.cache.UpsertProfile(ctx, username, doc)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("profile cache store failed", zap.String("username", username), zap.Error(err))
	}

	return raw, nil
}
