package suncache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/botalearn/plantcare/internal/domain/sunlight"
)

// Provider decorates a day-length provider with a read-through cache.
// Astronomical data for a coordinate is stable within a day, so repeated
// estimates for the same spot skip the upstream call. Cache failures fall
// back to the wrapped provider.
type Provider struct {
	next   sunlight.Provider
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewProvider wraps next with the given store.
func NewProvider(next sunlight.Provider, store Store, ttl time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "suncache.provider"),
		now:    time.Now,
	}
}

// Fetch returns the cached record for today when present, otherwise asks the
// wrapped provider and stores the result.
func (p *Provider) Fetch(ctx context.Context, latitude, longitude float64) (sunlight.DayRecord, error) {
	key := p.cacheKey(latitude, longitude)

	cached, found, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn("day-length cache read failed", "key", key, "error", err)
	} else if found {
		return cached, nil
	}

	record, err := p.next.Fetch(ctx, latitude, longitude)
	if err != nil {
		return sunlight.DayRecord{}, err
	}

	if err := p.store.Save(ctx, key, record, p.ttl); err != nil {
		p.logger.Warn("day-length cache write failed", "key", key, "error", err)
	}
	return record, nil
}

func (p *Provider) cacheKey(latitude, longitude float64) string {
	return fmt.Sprintf("%.4f:%.4f:%s", latitude, longitude, p.now().UTC().Format("2006-01-02"))
}

var _ sunlight.Provider = (*Provider)(nil)
