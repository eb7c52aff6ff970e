// Package database contains the logic for establishing
// the connection to MongoDB.
//
// It handles:
//   - building the client options from config
//   - wiring command logging/metrics (see monitor.go)
//   - optional New Relic instrumentation (nrmongo)
//   - pinging the deployment at startup and disconnecting on shutdown
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/bookshelf/internal/config"
	loggerConfig "github.com/deppfellow/bookshelf/internal/logger"
	"github.com/deppfellow/bookshelf/internal/metrics"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database wraps the Mongo client, the selected database and a logger.
//
// The client is goroutine safe and owns the connection pool, so one
// Database is shared by the whole process.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to MongoDB with instrumentation.
//
// Behavior:
//   - Apply the connection string and pool settings
//   - Install the command monitor (logs slow/failed commands, records metrics)
//   - Wrap the monitor with New Relic's when the agent runs
//   - Connect and ping the primary, so startup fails fast if Mongo is down
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService, m *metrics.Metrics) (*Database, error) {
	connectTimeout := time.Duration(cfg.Database.ConnectTimeout) * time.Second

	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI).
		SetAppName(cfg.Observability.ServiceName).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	if cfg.Database.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.Database.MaxPoolSize)
	}

	monitor := newCommandMonitor(commandMonitorConfig{
		logger:        logger,
		traceLogger:   localTraceLogger(cfg, logger),
		slowThreshold: cfg.Observability.Logging.SlowCommandThreshold,
		durations:     m.StoreCommands,
	})

	// nrmongo chains the original monitor, so both run for every command.
	if loggerService != nil && loggerService.GetApplication() != nil {
		clientOptions.SetMonitor(nrmongo.NewCommandMonitor(monitor))
	} else {
		clientOptions.SetMonitor(monitor)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Msg("connected to the database")

	return &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}, nil
}

// localTraceLogger returns the logger printing every command, or nil outside
// the local environment where that output would be far too noisy.
func localTraceLogger(cfg *config.Config, logger *zerolog.Logger) *zerolog.Logger {
	if cfg.Primary.Env != "local" {
		return nil
	}

	traceLogger := loggerConfig.NewMongoLogger(logger.GetLevel())
	return &traceLogger
}

// Ping checks that the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle on the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Close disconnects the client, waiting for in-use connections until ctx expires.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}
