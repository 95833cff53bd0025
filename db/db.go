package db

import "context"

// DB is a store connection owned by the process entrypoint.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
