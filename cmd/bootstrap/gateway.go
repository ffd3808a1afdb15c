package bootstrap

import (
	"log/slog"

	"kyren/internal/infra/bale"
	"kyren/internal/pkg/config"
	"kyren/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewNotifier,
	),
)

// NewNotifier wires the Bale bot client, or a no-op sender when no token is
// configured so local runs work without messenger credentials.
func NewNotifier(cfg config.Config) shared.Notifier {
	if cfg.Bale.Token == "" {
		slog.Warn("BALE_TOKEN not set, buyer notifications are disabled")
		return bale.NopNotifier{}
	}
	return bale.NewClient(cfg.Bale)
}
