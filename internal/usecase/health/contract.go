package health

import "context"

// SourcePinger checks bookmark source availability.
type SourcePinger interface {
	Ping(ctx context.Context) error
}
