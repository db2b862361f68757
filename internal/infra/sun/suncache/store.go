package suncache

import (
	"context"
	"time"

	"github.com/botalearn/plantcare/internal/domain/sunlight"
)

// Store persists raw day-length records keyed by coordinate and date. Only
// the upstream record is cached, never a computed exposure report.
type Store interface {
	Get(ctx context.Context, key string) (sunlight.DayRecord, bool, error)
	Save(ctx context.Context, key string, record sunlight.DayRecord, ttl time.Duration) error
}
