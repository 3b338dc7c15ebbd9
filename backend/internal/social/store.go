package social

import (
	"context"
	"time"

	"friendgraph/backend/internal/graph"
	"friendgraph/backend/pkg/errors"
)

// Store is the slice of the graph repository the relationship services need.
// graph.Repository satisfies it; tests substitute an in-memory fake.
//
// Edges of the symmetric friendship type are matched without direction by
// IsConnected, Disconnect and EdgesOf; all other types are directed.
type Store interface {
	ResolveUser(ctx context.Context, userID int64) (*graph.User, error)
	Connect(ctx context.Context, fromID, toID int64, rel graph.RelType, props map[string]any) error
	Disconnect(ctx context.Context, fromID, toID int64, rel graph.RelType) (bool, error)
	IsConnected(ctx context.Context, fromID, toID int64, rel graph.RelType) (bool, error)
	EdgesOf(ctx context.Context, userID int64, rel graph.RelType, dir graph.Direction) ([]graph.Edge, error)
	CountEdges(ctx context.Context, userID int64, rel graph.RelType, dir graph.Direction) (int64, error)
	SetEdgeProperties(ctx context.Context, fromID, toID int64, rel graph.RelType, props map[string]any) (bool, error)
}

// Clock supplies the current time to the services so tests can pin it
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by the wall clock
func SystemClock() Clock { return systemClock{} }

// resolvePair resolves two distinct user ids before any mutation. Both
// lookups happen up front so an invalid id never leaves partial state.
func resolvePair(ctx context.Context, store Store, id1, id2 int64) error {
	if id1 == id2 {
		return errors.NewSameUser(id1)
	}
	if _, err := store.ResolveUser(ctx, id1); err != nil {
		return err
	}
	if _, err := store.ResolveUser(ctx, id2); err != nil {
		return err
	}
	return nil
}
