package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"friendgraph/backend/pkg/errors"
	"friendgraph/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Named("graph"),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// CreateUser creates a user node, keyed by its external user id. Creating a
// user that already exists is a no-op that returns the existing node.
func (r *Repository) CreateUser(ctx context.Context, userID, facebookID int64) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MERGE (u:User {user_id: $userID})
		ON CREATE SET
			u.facebook_id = $facebookID,
			u.created = $now
		RETURN u.user_id as user_id, u.facebook_id as facebook_id, u.created as created
	`

	result, err := session.Run(ctx, query, map[string]any{
		"userID":     userID,
		"facebookID": facebookID,
		"now":        time.Now().UTC(),
	})
	if err != nil {
		return nil, errors.NewStoreUnavailable("create user", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, errors.NewStoreUnavailable("create user", err)
	}

	user := userFromRecord(record)
	r.logger.Info("User created",
		zap.Int64("user_id", user.UserID),
	)
	return user, nil
}

// DeleteUser removes a user node and every edge touching it
func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {user_id: $userID})
		DETACH DELETE u
	`

	result, err := session.Run(ctx, query, map[string]any{"userID": userID})
	if err != nil {
		return errors.NewStoreUnavailable("delete user", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return errors.NewStoreUnavailable("delete user", err)
	}
	if summary.Counters().NodesDeleted() == 0 {
		return errors.NewUserNotFound(userID)
	}

	r.logger.Info("User deleted", zap.Int64("user_id", userID))
	return nil
}

// ResolveUser looks up a user node by its external id
func (r *Repository) ResolveUser(ctx context.Context, userID int64) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {user_id: $userID})
		RETURN u.user_id as user_id, u.facebook_id as facebook_id, u.created as created
	`

	result, err := session.Run(ctx, query, map[string]any{"userID": userID})
	if err != nil {
		return nil, errors.NewStoreUnavailable("resolve user", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, errors.NewStoreUnavailable("resolve user", err)
		}
		return nil, errors.NewUserNotFound(userID)
	}

	return userFromRecord(result.Record()), nil
}

// FindUserByFacebookID looks up a user node by its facebook id
func (r *Repository) FindUserByFacebookID(ctx context.Context, facebookID int64) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {facebook_id: $facebookID})
		RETURN u.user_id as user_id, u.facebook_id as facebook_id, u.created as created
		LIMIT 1
	`

	result, err := session.Run(ctx, query, map[string]any{"facebookID": facebookID})
	if err != nil {
		return nil, errors.NewStoreUnavailable("find user by facebook id", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, errors.NewStoreUnavailable("find user by facebook id", err)
		}
		return nil, errors.NewUserNotFound(facebookID)
	}

	return userFromRecord(result.Record()), nil
}
