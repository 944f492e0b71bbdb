package history

import (
	"context"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

// New открывает хранилище по конфигурации. Выключенная история даёт NopStore.
func New(ctx context.Context, cfg Config, logger logging.Logger) (Store, error) {
	if !cfg.Enabled {
		logger.Debug("история прогонов выключена")
		return NewNopStore(), nil
	}

	store, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("хранилище истории открыто", "driver", store.dialect.Name)
	return store, nil
}
