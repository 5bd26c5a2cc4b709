//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/gridjam/internal/core/observability/log"
	"github.com/zeusync/gridjam/internal/core/scenario"
	"github.com/zeusync/gridjam/internal/core/sim"
)

func InitializeRunner(level log.Level) *sim.Runner {
	wire.Build(
		ProvideLogger,
		wire.Bind(new(log.Log), new(*log.Logger)),
		scenario.NewRegistry,
		sim.NewRunner,
	)
	return nil
}
