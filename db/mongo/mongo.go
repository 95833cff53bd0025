package mongo

import (
	"context"
	"fmt"
	"time"

	"reliefsupply/db"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ db.DB = (*MongoDB)(nil)

type MongoDB struct {
	Client   *mongo.Client
	URI      string
	Database string
	Timeout  time.Duration
}

func NewMongoDB(uri, database string, timeout time.Duration) *MongoDB {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MongoDB{
		URI:      uri,
		Database: database,
		Timeout:  timeout,
	}
}

// Connect dials the deployment and pings the primary within Timeout.
func (m *MongoDB) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	// Nested documents decode as maps so they serialize back as JSON objects.
	opts := options.Client().
		ApplyURI(m.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping mongo: %w", err)
	}
	m.Client = client
	return nil
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

// DB returns the configured application database.
func (m *MongoDB) DB() *mongo.Database {
	return m.Client.Database(m.Database)
}
