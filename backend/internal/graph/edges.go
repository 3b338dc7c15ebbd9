package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"friendgraph/backend/pkg/errors"
)

// ============================================================================
// Typed Edge Operations
// ============================================================================
//
// Relationship types come from the RelType constants and are interpolated
// into the Cypher text; they never originate from caller input.

// Connect creates a typed edge between two user nodes with the given
// properties. It does not enforce uniqueness; callers that need at-most-one
// semantics check prior existence first. Returns a not-found error if either
// endpoint does not exist.
func (r *Repository) Connect(ctx context.Context, fromID, toID int64, rel RelType, props map[string]any) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if props == nil {
		props = map[string]any{}
	}

	query := fmt.Sprintf(`
		MATCH (a:User {user_id: $fromID})
		MATCH (b:User {user_id: $toID})
		CREATE (a)-[r:%s]->(b)
		SET r = $props
	`, rel)

	result, err := session.Run(ctx, query, map[string]any{
		"fromID": fromID,
		"toID":   toID,
		"props":  props,
	})
	if err != nil {
		return errors.NewStoreUnavailable("connect", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return errors.NewStoreUnavailable("connect", err)
	}
	if summary.Counters().RelationshipsCreated() == 0 {
		// One of the endpoints is gone; resolve to report the right id.
		if _, rerr := r.ResolveUser(ctx, fromID); rerr != nil {
			return rerr
		}
		return errors.NewUserNotFound(toID)
	}

	r.logger.Debug("Edge created",
		zap.Int64("from", fromID),
		zap.Int64("to", toID),
		zap.String("rel", string(rel)),
	)
	return nil
}

// Disconnect removes the typed edge between two user nodes. Removing an edge
// that does not exist is not an error; the returned bool reports whether an
// edge was actually deleted. For the symmetric friendship type the edge is
// matched in either direction.
func (r *Repository) Disconnect(ctx context.Context, fromID, toID int64, rel RelType) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (a:User {user_id: $fromID})-[r:%s]%s(b:User {user_id: $toID})
		DELETE r
	`, rel, arrowhead(rel))

	result, err := session.Run(ctx, query, map[string]any{
		"fromID": fromID,
		"toID":   toID,
	})
	if err != nil {
		return false, errors.NewStoreUnavailable("disconnect", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return false, errors.NewStoreUnavailable("disconnect", err)
	}

	deleted := summary.Counters().RelationshipsDeleted() > 0
	if deleted {
		r.logger.Debug("Edge removed",
			zap.Int64("from", fromID),
			zap.Int64("to", toID),
			zap.String("rel", string(rel)),
		)
	}
	return deleted, nil
}

// IsConnected reports whether a typed edge exists between two user nodes.
// For the symmetric friendship type the check is direction-agnostic.
func (r *Repository) IsConnected(ctx context.Context, fromID, toID int64, rel RelType) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (a:User {user_id: $fromID})-[r:%s]%s(b:User {user_id: $toID})
		RETURN count(r) > 0 as connected
	`, rel, arrowhead(rel))

	result, err := session.Run(ctx, query, map[string]any{
		"fromID": fromID,
		"toID":   toID,
	})
	if err != nil {
		return false, errors.NewStoreUnavailable("is connected", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, errors.NewStoreUnavailable("is connected", err)
	}

	connected, _ := record.Get("connected")
	b, ok := connected.(bool)
	return ok && b, nil
}

// EdgesOf returns every edge of the given type at a node, as peer user id
// plus the edge's property map. Direction is ignored for the symmetric
// friendship type.
func (r *Repository) EdgesOf(ctx context.Context, userID int64, rel RelType, dir Direction) ([]Edge, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:User {user_id: $userID})%s(p:User)
		RETURN p.user_id as peer_id, properties(r) as props
	`, edgePattern(rel, dir))

	result, err := session.Run(ctx, query, map[string]any{"userID": userID})
	if err != nil {
		return nil, errors.NewStoreUnavailable("edges of", err)
	}

	var edges []Edge
	for result.Next(ctx) {
		record := result.Record()
		edges = append(edges, Edge{
			PeerID: getInt64FromRecord(record, "peer_id"),
			Props:  getMapFromRecord(record, "props"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewStoreUnavailable("edges of", err)
	}

	return edges, nil
}

// CountEdges counts the edges of the given type at a node without
// materializing them
func (r *Repository) CountEdges(ctx context.Context, userID int64, rel RelType, dir Direction) (int64, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:User {user_id: $userID})%s(p:User)
		RETURN count(r) as total
	`, edgePattern(rel, dir))

	result, err := session.Run(ctx, query, map[string]any{"userID": userID})
	if err != nil {
		return 0, errors.NewStoreUnavailable("count edges", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return 0, errors.NewStoreUnavailable("count edges", err)
	}

	return getInt64FromRecord(record, "total"), nil
}

// SetEdgeProperties merges the given properties into an existing edge. The
// returned bool reports whether a matching edge was found.
func (r *Repository) SetEdgeProperties(ctx context.Context, fromID, toID int64, rel RelType, props map[string]any) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (a:User {user_id: $fromID})-[r:%s]%s(b:User {user_id: $toID})
		SET r += $props
		RETURN count(r) as updated
	`, rel, arrowhead(rel))

	result, err := session.Run(ctx, query, map[string]any{
		"fromID": fromID,
		"toID":   toID,
		"props":  props,
	})
	if err != nil {
		return false, errors.NewStoreUnavailable("set edge properties", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, errors.NewStoreUnavailable("set edge properties", err)
	}

	return getInt64FromRecord(record, "updated") > 0, nil
}

// arrowhead returns the closing half of a relationship pattern: directed for
// ordinary edge types, undirected for the symmetric friendship type
func arrowhead(rel RelType) string {
	if rel.Symmetric() {
		return "-"
	}
	return "->"
}

// edgePattern builds the relationship fragment for EdgesOf/CountEdges
func edgePattern(rel RelType, dir Direction) string {
	if rel.Symmetric() {
		return fmt.Sprintf("-[r:%s]-", rel)
	}
	switch dir {
	case DirectionOutgoing:
		return fmt.Sprintf("-[r:%s]->", rel)
	case DirectionIncoming:
		return fmt.Sprintf("<-[r:%s]-", rel)
	default:
		return fmt.Sprintf("-[r:%s]-", rel)
	}
}
