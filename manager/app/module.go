package app

import (
	"github.com/edgeap/edgeap/adapter/swarm"
	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/cluster"
	"github.com/edgeap/edgeap/manager/dispatcher"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/placement"
	"github.com/edgeap/edgeap/manager/repository"
	"github.com/edgeap/edgeap/manager/repository/migration"
	"github.com/edgeap/edgeap/manager/rest"
	"github.com/edgeap/edgeap/manager/service"
	"github.com/edgeap/edgeap/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

func ConfigModule(cfg config.ManageConfig) fx.Option {
	return fx.Options(
		fx.Provide(func() config.ManageConfig {
			return cfg
		}),
		fx.Provide(func(managerCfg config.ManageConfig) config.ManagerConfig {
			return managerCfg.Manager
		}),
		fx.Provide(func(managerCfg config.ManageConfig) []config.RemoteConfig {
			return managerCfg.Remotes
		}),
		fx.Provide(func(managerCfg config.ManageConfig) config.PlacementConfig {
			return managerCfg.Placement
		}),
		fx.Provide(func(managerCfg config.ManageConfig) config.MongoDBConfig {
			return managerCfg.MongoDB
		}),
		fx.Provide(func(managerCfg config.ManageConfig) config.ServerConfig {
			return managerCfg.Server
		}),
		fx.Provide(func(managerCfg config.ManageConfig) config.KeyConfig {
			return managerCfg.Key
		}),
	)
}

// AdapterModule provides the swarm engine on the local socket and one
// connection per configured remote, return domain.Engine and []domain.NodeConn
func AdapterModule() fx.Option {
	return fx.Options(
		fx.Provide(NewEngine),
		fx.Provide(NewNodeConns),
	)
}

func NewEngine(lc fx.Lifecycle, cfg config.ManagerConfig) (domain.Engine, error) {
	engine, err := swarm.NewEngine(swarm.Options{
		Host:    cfg.EngineSocket,
		Timeout: cfg.EngineTimeout,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(engine.Close))
	return engine, nil
}

func NewNodeConns(lc fx.Lifecycle, cfg config.ManagerConfig, remotes []config.RemoteConfig) ([]domain.NodeConn, error) {
	nodes, err := swarm.NewRemoteNodes(remotes, cfg.EngineTimeout)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		for _, node := range nodes {
			_ = node.Close()
		}
	}))
	return nodes, nil
}

// ClusterModule provides the cluster state tracker and its recovery, return domain.ClusterState
func ClusterModule() fx.Option {
	return fx.Options(
		fx.Provide(func(cfg config.ManagerConfig) *cluster.Tracker {
			return cluster.NewTracker(cfg.Address)
		}),
		fx.Provide(func(tracker *cluster.Tracker) domain.ClusterState {
			return tracker
		}),
		fx.Provide(cluster.NewRecovery),
	)
}

// RepoModule provides the audit repository when auditing is enabled, return domain.AuditRepository
func RepoModule(audit config.AuditConfig) fx.Option {
	if !audit.Enabled {
		return fx.Options()
	}
	return fx.Provide(NewAuditRepository)
}

func NewAuditRepository(lc fx.Lifecycle, cfg config.MongoDBConfig) (domain.AuditRepository, error) {
	if _, err := migration.Up(cfg); err != nil {
		return nil, err
	}
	repo, err := repository.NewRepository(repository.Params{MongoConfig: cfg})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(repo.Close))
	return repo, nil
}

// ServiceModule creates an Fx module that provides the service layer, return domain.Service
func ServiceModule() fx.Option {
	return fx.Options(
		fx.Provide(placement.NewFirstNodePolicy),
		fx.Provide(func(cfg config.PlacementConfig) domain.PortAllocator {
			return placement.NewPortAllocator(cfg)
		}),
		fx.Provide(NewMetrics),
		fx.Provide(service.NewService),
	)
}

// NewMetrics registers the manager collector on its own registry.
func NewMetrics(state domain.ClusterState) (*service.MetricCollector, prometheus.Gatherer, error) {
	collector := service.NewMetricCollector(util.GetMachineID(), state)
	registry := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, nil, err
		}
	}
	return collector, registry, nil
}

// DispatcherModule provides the deploy/teardown request server, return *dispatcher.Server
func DispatcherModule() fx.Option {
	return fx.Provide(func(svc domain.Service, cfg config.ManagerConfig) *dispatcher.Server {
		return dispatcher.NewServer(svc, dispatcher.Options{
			RequestHost:    cfg.RequestHost,
			TeardownHost:   cfg.TeardownHost,
			ReadTimeout:    cfg.ReadTimeout,
			MaxRequestSize: cfg.MaxRequestSize,
		})
	})
}

// HandlerModule creates an Fx module that provides the REST handler, return *rest.Handler
func HandlerModule() fx.Option {
	return fx.Provide(rest.NewHandler)
}
