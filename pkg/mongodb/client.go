// Package mongodb wraps the official driver with the connection handling
// and document helpers the repositories share.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/garage-platform/garage-api/pkg/resilience"
)

// Config holds MongoDB connection settings
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64

	Username string
	Password string
	AuthDB   string

	ReplicaSet string
}

// DefaultConfig returns a Config pointed at a local instance
func DefaultConfig() *Config {
	return &Config{
		URI:            "mongodb://localhost:27017",
		Database:       "garage",
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    100,
		MinPoolSize:    10,
	}
}

func (c *Config) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(c.ConnectTimeout).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize)

	if c.Username != "" && c.Password != "" {
		opts.SetAuth(options.Credential{
			Username:   c.Username,
			Password:   c.Password,
			AuthSource: c.AuthDB,
		})
	}
	if c.ReplicaSet != "" {
		opts.SetReplicaSet(c.ReplicaSet)
	}
	return opts
}

// Client owns a mongo connection and the handle to the service database
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewClient connects and verifies the connection with a ping. The ping is
// retried with backoff so a database that is still starting up does not
// fail the whole process.
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	client, err := mongo.Connect(ctx, config.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.RetryableErrors = func(error) bool { return true }

	err = resilience.Retry(ctx, retryCfg, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &Client{
		client:   client,
		database: client.Database(config.Database),
	}, nil
}

// Database returns the service database handle
func (c *Client) Database() *mongo.Database {
	return c.database
}

// Collection returns a collection handle
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Close disconnects the client
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// HealthCheck pings the primary
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}
