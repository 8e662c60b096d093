package media

import (
	"context"
	"io"
)

// Storage is the two-phase object store behind image uploads. An object is
// written to a staging location first; only after the database points at it
// is it promoted to its public name. A discarded staging object must leave
// no trace.
type Storage interface {
	SaveStaging(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Promote(ctx context.Context, name string) (string, error)
	DiscardStaging(ctx context.Context, name string) error
}
