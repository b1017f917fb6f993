package repository

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/pkg/logger"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	placementEventCollection = "placement_events"
	connectTimeout           = 10 * time.Second
)

type Params struct {
	MongoConfig config.MongoDBConfig
}

func NewRepository(params Params) (domain.AuditRepository, error) {
	cfg := params.MongoConfig
	if cfg.Database == "" {
		return nil, fmt.Errorf("%w: mongodb.database is required", domain.ErrConfiguration)
	}
	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)
	if pem := cfg.CAPem.Value(); pem != "" {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(pem)) {
			return nil, fmt.Errorf("%w: mongodb.ca_pem holds no certificate", domain.ErrConfiguration)
		}
		opts.SetTLSConfig(&tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12})
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	logger.Logger(ctx).Info().Msgf("audit trail stored in mongodb %s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
	return &repo{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

type repo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ domain.AuditRepository = (*repo)(nil)

func (r *repo) Close(ctx context.Context) error {
	if r.client == nil {
		return errors.New("mongodb client is not connected")
	}
	return r.client.Disconnect(ctx)
}
