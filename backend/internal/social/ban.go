package social

import (
	"context"

	"go.uber.org/zap"

	"friendgraph/backend/internal/graph"
	"friendgraph/backend/pkg/logger"
)

// BanService manages directed ban edges. Bans are independent of friendship
// and follow state; they do not block other relations.
type BanService struct {
	store  Store
	clock  Clock
	logger *zap.Logger
}

// NewBanService creates a ban service over the given store
func NewBanService(store Store, clock Clock) *BanService {
	if clock == nil {
		clock = SystemClock()
	}
	return &BanService{
		store:  store,
		clock:  clock,
		logger: logger.Named("ban"),
	}
}

// Ban makes bannerID ban banneeID; idempotent on repeat calls
func (s *BanService) Ban(ctx context.Context, bannerID, banneeID int64) error {
	if err := resolvePair(ctx, s.store, bannerID, banneeID); err != nil {
		return err
	}

	banned, err := s.store.IsConnected(ctx, bannerID, banneeID, graph.RelBans)
	if err != nil {
		return err
	}
	if banned {
		return nil
	}

	props := map[string]any{"created": s.clock.Now()}
	if err := s.store.Connect(ctx, bannerID, banneeID, graph.RelBans, props); err != nil {
		return err
	}

	s.logger.Info("Ban established",
		zap.Int64("banner", bannerID),
		zap.Int64("bannee", banneeID),
	)
	return nil
}

// Unban removes the ban edge; no-op if absent
func (s *BanService) Unban(ctx context.Context, bannerID, banneeID int64) error {
	if err := resolvePair(ctx, s.store, bannerID, banneeID); err != nil {
		return err
	}

	_, err := s.store.Disconnect(ctx, bannerID, banneeID, graph.RelBans)
	return err
}

// HasBanned reports whether bannerID has banned banneeID
func (s *BanService) HasBanned(ctx context.Context, bannerID, banneeID int64) (bool, error) {
	if err := resolvePair(ctx, s.store, bannerID, banneeID); err != nil {
		return false, err
	}
	return s.store.IsConnected(ctx, bannerID, banneeID, graph.RelBans)
}

// Banned returns the user ids the given user has banned
func (s *BanService) Banned(ctx context.Context, userID int64) ([]int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return peerIDs(s.store.EdgesOf(ctx, userID, graph.RelBans, graph.DirectionOutgoing))
}

// BannedBy returns the user ids that have banned the given user
func (s *BanService) BannedBy(ctx context.Context, userID int64) ([]int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return peerIDs(s.store.EdgesOf(ctx, userID, graph.RelBans, graph.DirectionIncoming))
}
