package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ejoh/storefront-backend/internal/kvstore"
)

// ErrPersistFailed wraps every key-value store failure surfaced by a
// write-through. Callers match it with errors.Is.
var ErrPersistFailed = errors.New("failed to persist state")

// persistJSON serializes v and writes it through under key. Called with the
// owning service's mutex held, before the mutation is committed in memory.
func persistJSON(ctx context.Context, store kvstore.Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPersistFailed, key, err)
	}
	if err := store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

// loadJSON rehydrates v from the store. Absence is not an error; the
// service keeps its zero state.
func loadJSON(ctx context.Context, store kvstore.Store, key string, v interface{}) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("load %s: corrupt state: %w", key, err)
	}
	return true, nil
}

// simulateLatency stands in for a network round trip. The delay resolves
// exactly once and cannot be retried; cancelling the context cuts it short.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
