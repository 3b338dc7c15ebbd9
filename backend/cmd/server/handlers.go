package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"friendgraph/backend/internal/graph"
	"friendgraph/backend/internal/social"
	"friendgraph/backend/pkg/errors"
)

// userStore is the slice of the graph repository the user endpoints need
type userStore interface {
	CreateUser(ctx context.Context, userID, facebookID int64) (*graph.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	ResolveUser(ctx context.Context, userID int64) (*graph.User, error)
	FindUserByFacebookID(ctx context.Context, facebookID int64) (*graph.User, error)
}

type server struct {
	users       userStore
	friendships *social.FriendshipService
	follows     *social.FollowService
	bans        *social.BanService
	logger      *zap.Logger
}

func (s *server) registerRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/users", s.createUser)
		api.GET("/users/:id", s.getUser)
		api.GET("/facebook-users/:fbid", s.getUserByFacebookID)
		api.DELETE("/users/:id", s.deleteUser)

		api.POST("/requests", s.sendRequest)
		api.POST("/requests/accept", s.acceptRequest)
		api.POST("/requests/reject", s.rejectRequest)
		api.POST("/requests/cancel", s.cancelRequest)
		api.POST("/requests/viewed", s.markViewed)
		api.GET("/users/:id/requests/sent", s.sentRequests)
		api.GET("/users/:id/requests/incoming", s.incomingRequests)
		api.GET("/users/:id/requests/counts", s.requestCounts)

		api.GET("/users/:id/friends", s.listFriends)
		api.GET("/friends/check", s.areFriends)
		api.POST("/friends", s.addFriend)
		api.POST("/friends/remove", s.removeFriend)

		api.POST("/follows", s.follow)
		api.POST("/follows/remove", s.unfollow)
		api.GET("/follows/check", s.isFollowing)
		api.GET("/users/:id/followers", s.listFollowers)
		api.GET("/users/:id/following", s.listFollowing)

		api.POST("/bans", s.ban)
		api.POST("/bans/remove", s.unban)
		api.GET("/users/:id/bans", s.listBans)
	}
}

// pairRequest addresses an ordered pair of users, sender first for
// request operations
type pairRequest struct {
	FromID int64 `json:"from_id" binding:"required"`
	ToID   int64 `json:"to_id" binding:"required"`
}

func (s *server) createUser(c *gin.Context) {
	var req struct {
		UserID     int64 `json:"user_id" binding:"required"`
		FacebookID int64 `json:"facebook_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.CreateUser(c.Request.Context(), req.UserID, req.FacebookID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *server) getUser(c *gin.Context) {
	userID, ok := s.pathID(c)
	if !ok {
		return
	}

	user, err := s.users.ResolveUser(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *server) getUserByFacebookID(c *gin.Context) {
	facebookID, err := strconv.ParseInt(c.Param("fbid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fbid must be an integer"})
		return
	}

	user, err := s.users.FindUserByFacebookID(c.Request.Context(), facebookID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *server) deleteUser(c *gin.Context) {
	userID, ok := s.pathID(c)
	if !ok {
		return
	}

	if err := s.users.DeleteUser(c.Request.Context(), userID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) sendRequest(c *gin.Context) {
	var req struct {
		FromID  int64  `json:"from_id" binding:"required"`
		ToID    int64  `json:"to_id" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.friendships.SendRequest(c.Request.Context(), req.FromID, req.ToID, req.Message)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *server) acceptRequest(c *gin.Context) {
	s.pairAction(c, s.friendships.AcceptRequest)
}

func (s *server) rejectRequest(c *gin.Context) {
	s.pairAction(c, s.friendships.RejectRequest)
}

func (s *server) cancelRequest(c *gin.Context) {
	s.pairAction(c, s.friendships.CancelRequest)
}

func (s *server) markViewed(c *gin.Context) {
	s.pairAction(c, s.friendships.MarkViewed)
}

func (s *server) sentRequests(c *gin.Context) {
	userID, ok := s.pathID(c)
	if !ok {
		return
	}

	requests, err := s.friendships.SentRequests(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (s *server) incomingRequests(c *gin.Context) {
	userID, ok := s.pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var requests []social.FriendshipRequest
	var err error
	if c.Query("unread") == "true" {
		requests, err = s.friendships.UnreadIncomingRequests(ctx, userID)
	} else {
		requests, err = s.friendships.IncomingRequests(ctx, userID)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (s *server) requestCounts(c *gin.Context) {
	userID, ok := s.pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sent, err := s.friendships.SentRequestCount(ctx, userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	incoming, err := s.friendships.IncomingRequestCount(ctx, userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	unread, err := s.friendships.UnreadIncomingRequestCount(ctx, userID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sent":     sent,
		"incoming": incoming,
		"unread":   unread,
	})
}

func (s *server) listFriends(c *gin.Context) {
	s.idList(c, s.friendships.Friends)
}

func (s *server) areFriends(c *gin.Context) {
	s.pairCheck(c, s.friendships.AreFriends, "friends")
}

func (s *server) addFriend(c *gin.Context) {
	s.pairAction(c, s.friendships.AddFriend)
}

func (s *server) removeFriend(c *gin.Context) {
	s.pairAction(c, s.friendships.RemoveFriend)
}

func (s *server) follow(c *gin.Context) {
	s.pairAction(c, s.follows.Follow)
}

func (s *server) unfollow(c *gin.Context) {
	s.pairAction(c, s.follows.Unfollow)
}

func (s *server) isFollowing(c *gin.Context) {
	s.pairCheck(c, s.follows.IsFollowing, "following")
}

func (s *server) listFollowers(c *gin.Context) {
	s.idList(c, s.follows.Followers)
}

func (s *server) listFollowing(c *gin.Context) {
	s.idList(c, s.follows.Following)
}

func (s *server) ban(c *gin.Context) {
	s.pairAction(c, s.bans.Ban)
}

func (s *server) unban(c *gin.Context) {
	s.pairAction(c, s.bans.Unban)
}

func (s *server) listBans(c *gin.Context) {
	s.idList(c, s.bans.Banned)
}

// pairAction binds a (from, to) body and invokes a pair operation
func (s *server) pairAction(c *gin.Context, action func(context.Context, int64, int64) error) {
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := action(c.Request.Context(), req.FromID, req.ToID); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pairCheck answers a boolean pair query taken from from/to query params
func (s *server) pairCheck(c *gin.Context, check func(context.Context, int64, int64) (bool, error), field string) {
	fromID, err1 := strconv.ParseInt(c.Query("from"), 10, 64)
	toID, err2 := strconv.ParseInt(c.Query("to"), 10, 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params must be integers"})
		return
	}

	result, err := check(c.Request.Context(), fromID, toID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{field: result})
}

// idList answers a user-id list query for the user in the path
func (s *server) idList(c *gin.Context, list func(context.Context, int64) ([]int64, error)) {
	userID, ok := s.pathID(c)
	if !ok {
		return
	}

	ids, err := list(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_ids": ids})
}

func (s *server) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors onto HTTP status codes
func (s *server) respondError(c *gin.Context, err error) {
	switch {
	case errors.IsNotFound(err) || errors.IsRequestNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.IsSameUser(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.IsDuplicateRequest(err) || errors.IsAlreadyFriends(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.IsStoreUnavailable(err):
		s.logger.Error("Store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph store unavailable"})
	default:
		s.logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
