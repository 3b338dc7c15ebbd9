package social

import (
	"context"

	"go.uber.org/zap"

	"friendgraph/backend/internal/graph"
	"friendgraph/backend/pkg/logger"
)

// FollowService manages directed follow edges. There is no approval
// workflow: follows are established and removed directly.
type FollowService struct {
	store  Store
	clock  Clock
	logger *zap.Logger
}

// NewFollowService creates a follow service over the given store
func NewFollowService(store Store, clock Clock) *FollowService {
	if clock == nil {
		clock = SystemClock()
	}
	return &FollowService{
		store:  store,
		clock:  clock,
		logger: logger.Named("follow"),
	}
}

// Follow makes followerID follow followeeID. Re-following is a no-op
// success, never a duplicate edge.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if err := resolvePair(ctx, s.store, followerID, followeeID); err != nil {
		return err
	}

	following, err := s.store.IsConnected(ctx, followerID, followeeID, graph.RelFollows)
	if err != nil {
		return err
	}
	if following {
		return nil
	}

	props := map[string]any{"created": s.clock.Now()}
	if err := s.store.Connect(ctx, followerID, followeeID, graph.RelFollows, props); err != nil {
		return err
	}

	s.logger.Info("Follow established",
		zap.Int64("follower", followerID),
		zap.Int64("followee", followeeID),
	)
	return nil
}

// Unfollow removes the follow edge; no-op if absent
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := resolvePair(ctx, s.store, followerID, followeeID); err != nil {
		return err
	}

	_, err := s.store.Disconnect(ctx, followerID, followeeID, graph.RelFollows)
	return err
}

// IsFollowing reports whether followerID follows followeeID
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if err := resolvePair(ctx, s.store, followerID, followeeID); err != nil {
		return false, err
	}
	return s.store.IsConnected(ctx, followerID, followeeID, graph.RelFollows)
}

// Followers returns the user ids following the given user
func (s *FollowService) Followers(ctx context.Context, userID int64) ([]int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return peerIDs(s.store.EdgesOf(ctx, userID, graph.RelFollows, graph.DirectionIncoming))
}

// Following returns the user ids the given user follows
func (s *FollowService) Following(ctx context.Context, userID int64) ([]int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return peerIDs(s.store.EdgesOf(ctx, userID, graph.RelFollows, graph.DirectionOutgoing))
}

// FollowerCount counts the user's followers
func (s *FollowService) FollowerCount(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return 0, err
	}
	return s.store.CountEdges(ctx, userID, graph.RelFollows, graph.DirectionIncoming)
}

// FollowingCount counts how many users the user follows
func (s *FollowService) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return 0, err
	}
	return s.store.CountEdges(ctx, userID, graph.RelFollows, graph.DirectionOutgoing)
}

func peerIDs(edges []graph.Edge, err error) ([]int64, error) {
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.PeerID)
	}
	return ids, nil
}
