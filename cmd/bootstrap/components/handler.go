package components

import (
	"context"

	"kyren/internal/handler"
	"kyren/internal/handler/api"
	"kyren/internal/worker"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewProductHandler,
		api.NewGroupHandler,
		api.NewOrderHandler,
		api.NewWebhookHandler,
		worker.NewSweeper,
	),
	fx.Invoke(handler.NewRouter),
	fx.Invoke(startSweeper),
)

func startSweeper(lc fx.Lifecycle, sweeper *worker.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sweeper.Stop(ctx)
		},
	})
}
