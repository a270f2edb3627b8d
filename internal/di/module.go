package di

import (
	"go.uber.org/fx"

	"github.com/fideleatome/loyalty/internal/app"
	"github.com/fideleatome/loyalty/internal/config"
	"github.com/fideleatome/loyalty/internal/logger"
	"github.com/fideleatome/loyalty/internal/loyalty"
	"github.com/fideleatome/loyalty/internal/pkg/auth"
	"github.com/fideleatome/loyalty/internal/qr"
	"github.com/fideleatome/loyalty/internal/server/http/router"
	"github.com/fideleatome/loyalty/internal/storage/postgres"
	"github.com/fideleatome/loyalty/internal/usecase"
)

// Module assembles the full application graph.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		loyalty.Module,
		qr.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
