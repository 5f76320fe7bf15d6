package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool. Connections are acquired
// by the Conn method and released when its handler returns.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all idle connections. Pool may not be used
	// after it is closed.
	Close() error
}
