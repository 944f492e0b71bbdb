//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/boxing-smoke/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
//
// При добавлении провайдера: функция в providers.go, поле в App,
// запись здесь, затем go generate ./internal/di/...
//
// ProvideAPIClient стоит первым: его ошибка не должна оставлять
// открытыми историю и экспортёр трейсов.
var ProviderSet = wire.NewSet(
	ProvideAPIClient,
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideAlerter,
	ProvideHistoryStore,
	wire.Struct(new(App), "*"),
)

// InitializeApp собирает App из загруженной конфигурации.
//
//	cfg, err := config.Load()
//	...
//	app, err := di.InitializeApp(cfg)
//	defer app.Shutdown(ctx)
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
