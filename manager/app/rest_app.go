package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/cluster"
	"github.com/edgeap/edgeap/manager/dispatcher"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/rest"
	"github.com/edgeap/edgeap/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	reconcileInitialWait = 5 * time.Second
	startTimeout         = 2 * time.Minute
	stopTimeout          = 30 * time.Second
)

func NewManagerApp(configName string, configDirPath string) (*fx.App, error) {
	cfg, err := config.InitManagerConfig(configName, configDirPath)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("%w: logging.level: %v", domain.ErrConfiguration, err)
	}
	if _, err := logger.SetOutput(cfg.Logging.Console, cfg.Logging.FilePath); err != nil {
		return nil, fmt.Errorf("%w: logging.file_path: %v", domain.ErrConfiguration, err)
	}

	app := fx.New(
		ConfigModule(cfg),
		AdapterModule(),
		ClusterModule(),
		RepoModule(cfg.Audit),
		ServiceModule(),
		DispatcherModule(),
		HandlerModule(),
		fx.StartTimeout(startTimeout),
		fx.StopTimeout(stopTimeout),
		fx.Invoke(StartCluster),
		fx.Invoke(LeaveOnShutdown),
		fx.Invoke(StartDispatcher),
		fx.Invoke(StartRestApp),
		fx.Invoke(StartDriftReconciler),
	)
	return app, nil
}

// StartCluster creates or restores the cluster before any request is
// accepted. Failure aborts startup.
func StartCluster(lc fx.Lifecycle, recovery *cluster.Recovery) {
	lc.Append(fx.StartHook(recovery.Initialize))
}

// LeaveOnShutdown dissolves the cluster on stop when configured to. It stops
// after the dispatcher has drained.
func LeaveOnShutdown(lc fx.Lifecycle, cfg config.ManagerConfig, svc domain.Service) {
	if !cfg.LeaveOnShutdown {
		return
	}
	lc.Append(fx.StopHook(func(ctx context.Context) error {
		logger.Logger(ctx).Info().Msg("leave_on_shutdown set, shutting the cluster down")
		return svc.ShutdownCluster(ctx)
	}))
}

func StartDispatcher(lc fx.Lifecycle, server *dispatcher.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := server.Listen(ctx); err != nil {
				return err
			}
			go func() {
				if err := server.Serve(); err != nil && !errors.Is(err, dispatcher.ErrServerClosed) {
					logger.Logger(context.Background()).Fatal().Err(err).Msg("request dispatcher stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down request dispatcher")
			return server.Shutdown(ctx)
		},
	})
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":8080"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on %s", serverHost)
				if err := engine.Start(serverHost); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Logger(context.Background()).Fatal().Err(err).Msgf("start rest server fail on %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}

// StartDriftReconciler periodically compares the tracker with the services
// the engine reports and logs any drift.
func StartDriftReconciler(lc fx.Lifecycle, cfg config.ManagerConfig, svc domain.Service) {
	interval := cfg.ReconcileInterval
	if interval <= 0 {
		return
	}
	stopCh := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				bgCtx := context.Background()
				logger.Logger(bgCtx).Info().Msgf("drift reconciler starting, initial wait %s, interval %s", reconcileInitialWait, interval)

				select {
				case <-time.After(reconcileInitialWait):
				case <-stopCh:
					return
				}
				if _, err := svc.CheckDrift(bgCtx); err != nil {
					logger.Logger(bgCtx).Warn().Err(err).Msg("initial drift check failed")
				}

				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if _, err := svc.CheckDrift(bgCtx); err != nil {
							logger.Logger(bgCtx).Warn().Err(err).Msg("periodic drift check failed")
						}
					case <-stopCh:
						logger.Logger(bgCtx).Info().Msg("drift reconciler stopped")
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stopCh)
			return nil
		},
	})
}
