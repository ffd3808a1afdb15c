package components

import (
	"kyren/internal/pkg/clock"
	"kyren/internal/pkg/config"
	"kyren/internal/usecase/commands"
	"kyren/internal/usecase/queries"
	"kyren/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewGroupCommands,
		commands.NewProductCommands,
		commands.NewUserCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewProductQueries,
		queries.NewGroupQueries,
		queries.NewOrderQueries,
	),
)

func NewGroupCommands(uow shared.UnitOfWork, notifier shared.Notifier, cfg config.Config) commands.GroupCommands {
	return commands.NewGroupCommands(uow, notifier, cfg.Sweep.GroupTTL)
}
