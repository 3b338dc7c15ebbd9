package social

import (
	"context"
	"time"

	"friendgraph/backend/internal/graph"
	"friendgraph/backend/pkg/errors"
)

// memStore is an in-memory Store used by the service tests. It mirrors the
// adapter contract, including undirected matching for the symmetric
// friendship type, and lets tests inject failures to exercise the partial
// failure paths.
type memStore struct {
	users map[int64]*graph.User
	edges []*memEdge

	connectErr    error
	disconnectErr error
}

type memEdge struct {
	from, to int64
	rel      graph.RelType
	props    map[string]any
}

func newMemStore(userIDs ...int64) *memStore {
	s := &memStore{users: make(map[int64]*graph.User)}
	for _, id := range userIDs {
		s.users[id] = &graph.User{UserID: id, FacebookID: id, Created: time.Unix(0, 0)}
	}
	return s
}

func (s *memStore) ResolveUser(_ context.Context, userID int64) (*graph.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, errors.NewUserNotFound(userID)
	}
	return user, nil
}

func (s *memStore) Connect(_ context.Context, fromID, toID int64, rel graph.RelType, props map[string]any) error {
	if s.connectErr != nil {
		return s.connectErr
	}
	if _, ok := s.users[fromID]; !ok {
		return errors.NewUserNotFound(fromID)
	}
	if _, ok := s.users[toID]; !ok {
		return errors.NewUserNotFound(toID)
	}
	copied := make(map[string]any, len(props))
	for k, v := range props {
		copied[k] = v
	}
	s.edges = append(s.edges, &memEdge{from: fromID, to: toID, rel: rel, props: copied})
	return nil
}

func (s *memStore) Disconnect(_ context.Context, fromID, toID int64, rel graph.RelType) (bool, error) {
	if s.disconnectErr != nil {
		return false, s.disconnectErr
	}
	for i, e := range s.edges {
		if e.matches(fromID, toID, rel) {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) IsConnected(_ context.Context, fromID, toID int64, rel graph.RelType) (bool, error) {
	for _, e := range s.edges {
		if e.matches(fromID, toID, rel) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) EdgesOf(_ context.Context, userID int64, rel graph.RelType, dir graph.Direction) ([]graph.Edge, error) {
	var result []graph.Edge
	for _, e := range s.edges {
		if e.rel != rel {
			continue
		}
		if rel.Symmetric() || dir == graph.DirectionAny {
			if e.from == userID {
				result = append(result, graph.Edge{PeerID: e.to, Props: e.props})
			} else if e.to == userID {
				result = append(result, graph.Edge{PeerID: e.from, Props: e.props})
			}
			continue
		}
		if dir == graph.DirectionOutgoing && e.from == userID {
			result = append(result, graph.Edge{PeerID: e.to, Props: e.props})
		}
		if dir == graph.DirectionIncoming && e.to == userID {
			result = append(result, graph.Edge{PeerID: e.from, Props: e.props})
		}
	}
	return result, nil
}

func (s *memStore) CountEdges(ctx context.Context, userID int64, rel graph.RelType, dir graph.Direction) (int64, error) {
	edges, err := s.EdgesOf(ctx, userID, rel, dir)
	if err != nil {
		return 0, err
	}
	return int64(len(edges)), nil
}

func (s *memStore) SetEdgeProperties(_ context.Context, fromID, toID int64, rel graph.RelType, props map[string]any) (bool, error) {
	for _, e := range s.edges {
		if e.matches(fromID, toID, rel) {
			for k, v := range props {
				e.props[k] = v
			}
			return true, nil
		}
	}
	return false, nil
}

func (e *memEdge) matches(fromID, toID int64, rel graph.RelType) bool {
	if e.rel != rel {
		return false
	}
	if e.from == fromID && e.to == toID {
		return true
	}
	return rel.Symmetric() && e.from == toID && e.to == fromID
}

// edgeCount counts raw stored edges of a type, regardless of endpoint
func (s *memStore) edgeCount(rel graph.RelType) int {
	n := 0
	for _, e := range s.edges {
		if e.rel == rel {
			n++
		}
	}
	return n
}

// tickClock hands out a strictly increasing, deterministic time
type tickClock struct {
	t time.Time
}

func newTickClock() *tickClock {
	return &tickClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *tickClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}
