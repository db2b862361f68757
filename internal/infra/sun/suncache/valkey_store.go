package suncache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/botalearn/plantcare/internal/domain/sunlight"
)

// ValkeyStore keeps day-length records in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "sun"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (sunlight.DayRecord, bool, error) {
	cmd := s.client.B().Get().Key(s.recordKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return sunlight.DayRecord{}, false, nil
		}
		return sunlight.DayRecord{}, false, err
	}
	var record sunlight.DayRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return sunlight.DayRecord{}, false, err
	}
	return record, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, record sunlight.DayRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.recordKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) recordKey(key string) string {
	return s.prefix + ":day:" + key
}

var _ Store = (*ValkeyStore)(nil)
