package history

import "context"

// NopStore используется при выключенной истории.
type NopStore struct{}

// NewNopStore создаёт NopStore.
func NewNopStore() *NopStore {
	return &NopStore{}
}

// Save ничего не делает.
func (NopStore) Save(context.Context, Run) error { return nil }

// Recent всегда возвращает пустой список.
func (NopStore) Recent(context.Context, string, int) ([]Run, error) { return nil, nil }

// Close ничего не делает.
func (NopStore) Close() error { return nil }
