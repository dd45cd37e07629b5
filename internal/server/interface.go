package server

import "context"

// Server exposes the service over HTTP and shuts down cleanly on context
// cancellation.
type Server interface {
	Run(ctx context.Context) error
}
