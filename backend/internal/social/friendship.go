package social

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"friendgraph/backend/internal/graph"
	"friendgraph/backend/pkg/errors"
	"friendgraph/backend/pkg/logger"
)

// FriendshipService manages friendships and the request workflow that gates
// them. A request moves from pending (optionally viewed) to exactly one of
// accepted, rejected or canceled; acceptance is the only regular path that
// creates a friendship edge.
type FriendshipService struct {
	store  Store
	clock  Clock
	logger *zap.Logger
}

// NewFriendshipService creates a friendship service over the given store
func NewFriendshipService(store Store, clock Clock) *FriendshipService {
	if clock == nil {
		clock = SystemClock()
	}
	return &FriendshipService{
		store:  store,
		clock:  clock,
		logger: logger.Named("friendship"),
	}
}

// SendRequest creates a pending friendship request from one user to another.
// Fails with a duplicate-request error if an outstanding request for the
// ordered pair exists, and with an already-friends error if the pair is
// already connected.
func (s *FriendshipService) SendRequest(ctx context.Context, fromID, toID int64, message string) (*FriendshipRequest, error) {
	if err := resolvePair(ctx, s.store, fromID, toID); err != nil {
		return nil, err
	}

	pending, err := s.store.IsConnected(ctx, fromID, toID, graph.RelFriendRequest)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errors.NewDuplicateRequest(fromID, toID)
	}

	friends, err := s.store.IsConnected(ctx, fromID, toID, graph.RelFriendsWith)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, errors.NewAlreadyFriends(fromID, toID)
	}

	req := &FriendshipRequest{
		ID:          uuid.NewString(),
		SenderID:    fromID,
		RecipientID: toID,
		Message:     message,
		Created:     s.clock.Now(),
	}
	props := map[string]any{
		"id":      req.ID,
		"created": req.Created,
	}
	if message != "" {
		props["message"] = message
	}
	if err := s.store.Connect(ctx, fromID, toID, graph.RelFriendRequest, props); err != nil {
		return nil, err
	}

	s.logger.Info("Friendship request sent",
		zap.Int64("from", fromID),
		zap.Int64("to", toID),
	)
	return req, nil
}

// CancelRequest removes the outstanding request, sender side. Canceling a
// request that no longer exists is a no-op success: the goal state already
// holds.
func (s *FriendshipService) CancelRequest(ctx context.Context, fromID, toID int64) error {
	if err := resolvePair(ctx, s.store, fromID, toID); err != nil {
		return err
	}

	removed, err := s.store.Disconnect(ctx, fromID, toID, graph.RelFriendRequest)
	if err != nil {
		return err
	}
	if removed {
		s.logger.Info("Friendship request canceled",
			zap.Int64("from", fromID),
			zap.Int64("to", toID),
		)
	}
	return nil
}

// RejectRequest removes the outstanding request, recipient side. Same edge
// removal as CancelRequest; the two differ only in who invokes them.
func (s *FriendshipService) RejectRequest(ctx context.Context, fromID, toID int64) error {
	if err := resolvePair(ctx, s.store, fromID, toID); err != nil {
		return err
	}

	removed, err := s.store.Disconnect(ctx, fromID, toID, graph.RelFriendRequest)
	if err != nil {
		return err
	}
	if removed {
		s.logger.Info("Friendship request rejected",
			zap.Int64("from", fromID),
			zap.Int64("to", toID),
		)
	}
	return nil
}

// AcceptRequest converts a pending request into a friendship. The friendship
// edge is created before the request edge is removed, so a failure in
// between leaves a state a retry repairs: the next accept sees the existing
// friendship, skips creation, and just clears the request.
func (s *FriendshipService) AcceptRequest(ctx context.Context, fromID, toID int64) error {
	if err := resolvePair(ctx, s.store, fromID, toID); err != nil {
		return err
	}

	pending, err := s.store.IsConnected(ctx, fromID, toID, graph.RelFriendRequest)
	if err != nil {
		return err
	}
	if !pending {
		return errors.NewRequestNotFound(fromID, toID)
	}

	friends, err := s.store.IsConnected(ctx, fromID, toID, graph.RelFriendsWith)
	if err != nil {
		return err
	}
	if !friends {
		props := map[string]any{
			"created": s.clock.Now(),
			"active":  true,
		}
		if err := s.store.Connect(ctx, fromID, toID, graph.RelFriendsWith, props); err != nil {
			return err
		}
	}

	if _, err := s.store.Disconnect(ctx, fromID, toID, graph.RelFriendRequest); err != nil {
		return err
	}

	s.logger.Info("Friendship request accepted",
		zap.Int64("from", fromID),
		zap.Int64("to", toID),
	)
	return nil
}

// MarkViewed stamps the request with the time the recipient saw it. Calling
// it again overwrites the stamp.
func (s *FriendshipService) MarkViewed(ctx context.Context, fromID, toID int64) error {
	if err := resolvePair(ctx, s.store, fromID, toID); err != nil {
		return err
	}

	found, err := s.store.SetEdgeProperties(ctx, fromID, toID, graph.RelFriendRequest, map[string]any{
		"viewed": s.clock.Now(),
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.NewRequestNotFound(fromID, toID)
	}
	return nil
}

// SentRequests returns the outstanding requests the user has sent
func (s *FriendshipService) SentRequests(ctx context.Context, userID int64) ([]FriendshipRequest, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}

	edges, err := s.store.EdgesOf(ctx, userID, graph.RelFriendRequest, graph.DirectionOutgoing)
	if err != nil {
		return nil, err
	}

	requests := make([]FriendshipRequest, 0, len(edges))
	for _, edge := range edges {
		requests = append(requests, requestFromEdge(userID, edge.PeerID, edge))
	}
	return requests, nil
}

// IncomingRequests returns the outstanding requests addressed to the user
func (s *FriendshipService) IncomingRequests(ctx context.Context, userID int64) ([]FriendshipRequest, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}

	edges, err := s.store.EdgesOf(ctx, userID, graph.RelFriendRequest, graph.DirectionIncoming)
	if err != nil {
		return nil, err
	}

	requests := make([]FriendshipRequest, 0, len(edges))
	for _, edge := range edges {
		requests = append(requests, requestFromEdge(edge.PeerID, userID, edge))
	}
	return requests, nil
}

// UnreadIncomingRequests returns the incoming requests the user has not
// viewed yet
func (s *FriendshipService) UnreadIncomingRequests(ctx context.Context, userID int64) ([]FriendshipRequest, error) {
	requests, err := s.IncomingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread := make([]FriendshipRequest, 0, len(requests))
	for _, req := range requests {
		if req.Unread() {
			unread = append(unread, req)
		}
	}
	return unread, nil
}

// SentRequestCount counts the user's outstanding sent requests
func (s *FriendshipService) SentRequestCount(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return 0, err
	}
	return s.store.CountEdges(ctx, userID, graph.RelFriendRequest, graph.DirectionOutgoing)
}

// IncomingRequestCount counts the user's outstanding incoming requests
func (s *FriendshipService) IncomingRequestCount(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return 0, err
	}
	return s.store.CountEdges(ctx, userID, graph.RelFriendRequest, graph.DirectionIncoming)
}

// UnreadIncomingRequestCount counts the incoming requests not viewed yet
func (s *FriendshipService) UnreadIncomingRequestCount(ctx context.Context, userID int64) (int64, error) {
	unread, err := s.UnreadIncomingRequests(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(unread)), nil
}

// Friends returns the user ids of the user's friends
func (s *FriendshipService) Friends(ctx context.Context, userID int64) ([]int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return nil, err
	}

	edges, err := s.store.EdgesOf(ctx, userID, graph.RelFriendsWith, graph.DirectionAny)
	if err != nil {
		return nil, err
	}

	friends := make([]int64, 0, len(edges))
	for _, edge := range edges {
		friends = append(friends, edge.PeerID)
	}
	return friends, nil
}

// FriendCount counts the user's friends
func (s *FriendshipService) FriendCount(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.store.ResolveUser(ctx, userID); err != nil {
		return 0, err
	}
	return s.store.CountEdges(ctx, userID, graph.RelFriendsWith, graph.DirectionAny)
}

// AreFriends reports whether the two users are friends, from either side
func (s *FriendshipService) AreFriends(ctx context.Context, id1, id2 int64) (bool, error) {
	if err := resolvePair(ctx, s.store, id1, id2); err != nil {
		return false, err
	}
	return s.store.IsConnected(ctx, id1, id2, graph.RelFriendsWith)
}

// AddFriend establishes a friendship directly, without a request. This is an
// administrative bypass of the request workflow; idempotent when the users
// are already friends.
func (s *FriendshipService) AddFriend(ctx context.Context, id1, id2 int64) error {
	if err := resolvePair(ctx, s.store, id1, id2); err != nil {
		return err
	}

	friends, err := s.store.IsConnected(ctx, id1, id2, graph.RelFriendsWith)
	if err != nil {
		return err
	}
	if friends {
		return nil
	}

	props := map[string]any{
		"created": s.clock.Now(),
		"active":  true,
	}
	if err := s.store.Connect(ctx, id1, id2, graph.RelFriendsWith, props); err != nil {
		return err
	}

	s.logger.Info("Friendship added directly",
		zap.Int64("user1", id1),
		zap.Int64("user2", id2),
	)
	return nil
}

// RemoveFriend removes the friendship between two users; no-op if they are
// not friends
func (s *FriendshipService) RemoveFriend(ctx context.Context, id1, id2 int64) error {
	if err := resolvePair(ctx, s.store, id1, id2); err != nil {
		return err
	}

	removed, err := s.store.Disconnect(ctx, id1, id2, graph.RelFriendsWith)
	if err != nil {
		return err
	}
	if removed {
		s.logger.Info("Friendship removed",
			zap.Int64("user1", id1),
			zap.Int64("user2", id2),
		)
	}
	return nil
}
