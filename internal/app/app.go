package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fideleatome/loyalty/internal/config"
	"github.com/fideleatome/loyalty/internal/loyalty"
	"github.com/fideleatome/loyalty/internal/server/http/handlers"
	"github.com/fideleatome/loyalty/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewLoyaltyFacade,
		func(f *LoyaltyFacade) handlers.LoyaltyFacade { return f },
		newHTTPServer,
		newAuditor,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type auditorParams struct {
	fx.In

	Facade *LoyaltyFacade
	Policy loyalty.TierPolicy
	Config *config.Config
	Logger *slog.Logger
}

func newAuditor(p auditorParams) *worker.Auditor {
	return worker.NewAuditor(
		p.Facade,
		p.Policy,
		p.Config.AuditInterval,
		p.Config.AuditBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Auditor    *worker.Auditor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting loyalty server", slog.String("addr", p.Server.Addr))
			// The hook context is canceled once startup completes; the
			// auditor must keep running until Stop.
			p.Auditor.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Auditor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("loyalty server stopped")
			return nil
		},
	})
}
