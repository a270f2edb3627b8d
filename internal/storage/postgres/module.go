package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/fideleatome/loyalty/internal/config"
	"github.com/fideleatome/loyalty/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.CustomerRepository { return s.Customers() },
		func(s *Storage) repository.BusinessRepository { return s.Businesses() },
		func(s *Storage) repository.PurchaseRepository { return s.Purchases() },
		func(s *Storage) repository.RewardRepository { return s.Rewards() },
		func(s *Storage) repository.AccrualRepository { return s.Accruals() },
		func(s *Storage) repository.StatsRepository { return s.Stats() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
