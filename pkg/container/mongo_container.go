package container

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/edgeap/edgeap/config"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	mongoImage   = "mongo"
	mongoTag     = "8.2.2"
	mongoPort    = docker.Port("27017/tcp")
	pingDeadline = 3 * time.Second
)

// StartMongo brings up the audit store for integration tests. A running
// container called name is reused. The returned config is cfg pointed at
// the container, and the server answers a ping before it is returned.
func StartMongo(builder *ContainerBuilder, name string, cfg config.MongoDBConfig) (config.MongoDBConfig, error) {
	existing, err := builder.FindContainer(name)
	if err != nil {
		return cfg, err
	}
	if existing != nil && existing.State == "running" {
		host, port, ok := publishedMongoPort(existing)
		if !ok {
			return cfg, fmt.Errorf("mongo container %s publishes no port for %s", name, mongoPort)
		}
		builder.AddContainer(existing.ID, ContainerInfo{Name: name, Type: ContainerTypeMongoDB})
		cfg.Host, cfg.Port = host, port
		return cfg, waitForMongo(builder, cfg)
	}

	resource, err := builder.RunWithOptions(mongoRunOptions(name, cfg))
	if err != nil {
		return cfg, fmt.Errorf("run mongo container %s: %w", name, err)
	}
	builder.AddContainer(resource.Container.ID, ContainerInfo{Name: name, Type: ContainerTypeMongoDB})
	cfg.Host = resource.GetBoundIP(string(mongoPort))
	cfg.Port = resource.GetPort(string(mongoPort))
	if err := waitForMongo(builder, cfg); err != nil {
		return cfg, fmt.Errorf("wait for mongo container %s: %w", name, err)
	}
	return cfg, nil
}

func mongoRunOptions(name string, cfg config.MongoDBConfig) *dockertest.RunOptions {
	opts := &dockertest.RunOptions{
		Name:       name,
		Repository: mongoImage,
		Tag:        mongoTag,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + cfg.User,
			"MONGO_INITDB_ROOT_PASSWORD=" + cfg.Password.Value(),
		},
	}
	if cfg.Database != "" {
		opts.Env = append(opts.Env, "MONGO_INITDB_DATABASE="+cfg.Database)
	}
	// a fixed host port keeps the container reachable across test runs
	if cfg.Port != "" {
		opts.PortBindings = map[docker.Port][]docker.PortBinding{
			mongoPort: {{HostIP: "127.0.0.1", HostPort: cfg.Port}},
		}
	}
	return opts
}

func publishedMongoPort(c *docker.APIContainers) (host, port string, ok bool) {
	for _, p := range c.Ports {
		if strconv.FormatInt(p.PrivatePort, 10)+"/"+p.Type == string(mongoPort) && p.PublicPort != 0 {
			return p.IP, strconv.FormatInt(p.PublicPort, 10), true
		}
	}
	return "", "", false
}

func waitForMongo(builder *ContainerBuilder, cfg config.MongoDBConfig) error {
	return builder.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), pingDeadline)
		defer cancel()
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI()))
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()
		return client.Ping(ctx, readpref.Primary())
	})
}
