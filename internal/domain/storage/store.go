package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

// DefaultKey is the key the application state lives under.
const DefaultKey = "dashboard_app_state"

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KV is a minimal byte-oriented key-value backend.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store loads and saves the whole application state.
type Store interface {
	Load(ctx context.Context) (*types.AppState, error)
	Save(ctx context.Context, state *types.AppState) error
}

// StateStore keeps AppState as JSON under a single key.
type StateStore struct {
	kv  KV
	key string
}

// NewStateStore wraps kv. An empty key falls back to DefaultKey.
func NewStateStore(kv KV, key string) *StateStore {
	if key == "" {
		key = DefaultKey
	}
	return &StateStore{kv: kv, key: key}
}

// Key returns the storage key.
func (s *StateStore) Key() string {
	return s.key
}

// Load returns ErrNotFound when nothing has been saved yet.
func (s *StateStore) Load(ctx context.Context) (*types.AppState, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}

	var state types.AppState
	if err := sonic.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if state.Dashboards == nil {
		state.Dashboards = []types.Dashboard{}
	}
	return &state, nil
}

// Save replaces the stored document.
func (s *StateStore) Save(ctx context.Context, state *types.AppState) error {
	if state == nil {
		return errors.New("storage: nil state")
	}
	data, err := sonic.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Clear removes the stored document.
func (s *StateStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
