package graph

import (
	"context"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"friendgraph/backend/pkg/errors"
)

// These tests require a running Neo4j instance at bolt://localhost:7687
// (user neo4j / password password) and are skipped under -short.

func TestRepository_CreateResolveDeleteUser(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	userID := testUserID()
	defer cleanupUsers(ctx, driver, userID)

	created, err := repo.CreateUser(ctx, userID, userID)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.UserID != userID {
		t.Errorf("Expected user_id %d, got %d", userID, created.UserID)
	}

	resolved, err := repo.ResolveUser(ctx, userID)
	if err != nil {
		t.Fatalf("ResolveUser failed: %v", err)
	}
	if resolved.FacebookID != userID {
		t.Errorf("Expected facebook_id %d, got %d", userID, resolved.FacebookID)
	}

	if err := repo.DeleteUser(ctx, userID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	_, err = repo.ResolveUser(ctx, userID)
	if !errors.IsNotFound(err) {
		t.Errorf("Expected user-not-found after delete, got %v", err)
	}
}

func TestRepository_ResolveUser_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	_, err = repo.ResolveUser(ctx, -42)
	if !errors.IsNotFound(err) {
		t.Errorf("Expected user-not-found, got %v", err)
	}
}

func TestRepository_DirectedEdges(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	a, b := testUserID(), testUserID()+1
	defer cleanupUsers(ctx, driver, a, b)

	for _, id := range []int64{a, b} {
		if _, err := repo.CreateUser(ctx, id, 0); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	if err := repo.Connect(ctx, a, b, RelFollows, map[string]any{"created": time.Now().UTC()}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	// Direction matters for FOLLOWS
	connected, err := repo.IsConnected(ctx, a, b, RelFollows)
	if err != nil || !connected {
		t.Fatalf("Expected a->b follow edge, connected=%v err=%v", connected, err)
	}
	connected, err = repo.IsConnected(ctx, b, a, RelFollows)
	if err != nil {
		t.Fatalf("IsConnected failed: %v", err)
	}
	if connected {
		t.Error("Did not expect b->a follow edge")
	}

	out, err := repo.EdgesOf(ctx, a, RelFollows, DirectionOutgoing)
	if err != nil {
		t.Fatalf("EdgesOf failed: %v", err)
	}
	if len(out) != 1 || out[0].PeerID != b {
		t.Errorf("Expected one outgoing edge to %d, got %+v", b, out)
	}

	in, err := repo.CountEdges(ctx, b, RelFollows, DirectionIncoming)
	if err != nil {
		t.Fatalf("CountEdges failed: %v", err)
	}
	if in != 1 {
		t.Errorf("Expected incoming count 1, got %d", in)
	}

	removed, err := repo.Disconnect(ctx, a, b, RelFollows)
	if err != nil || !removed {
		t.Fatalf("Disconnect failed, removed=%v err=%v", removed, err)
	}
	removed, err = repo.Disconnect(ctx, a, b, RelFollows)
	if err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if removed {
		t.Error("Second disconnect should be a no-op")
	}
}

func TestRepository_SymmetricFriendship(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	a, b := testUserID(), testUserID()+1
	defer cleanupUsers(ctx, driver, a, b)

	for _, id := range []int64{a, b} {
		if _, err := repo.CreateUser(ctx, id, 0); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	if err := repo.Connect(ctx, a, b, RelFriendsWith, map[string]any{"created": time.Now().UTC(), "active": true}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	// A single stored edge is visible from both endpoints
	for _, pair := range [][2]int64{{a, b}, {b, a}} {
		connected, err := repo.IsConnected(ctx, pair[0], pair[1], RelFriendsWith)
		if err != nil {
			t.Fatalf("IsConnected failed: %v", err)
		}
		if !connected {
			t.Errorf("Expected %d and %d to be connected", pair[0], pair[1])
		}
	}

	// Disconnect from the far side removes the same logical edge
	removed, err := repo.Disconnect(ctx, b, a, RelFriendsWith)
	if err != nil || !removed {
		t.Fatalf("Disconnect failed, removed=%v err=%v", removed, err)
	}
}

func TestRepository_SetEdgeProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	a, b := testUserID(), testUserID()+1
	defer cleanupUsers(ctx, driver, a, b)

	for _, id := range []int64{a, b} {
		if _, err := repo.CreateUser(ctx, id, 0); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	if err := repo.Connect(ctx, a, b, RelFriendRequest, map[string]any{"message": "hey"}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	viewed := time.Now().UTC()
	found, err := repo.SetEdgeProperties(ctx, a, b, RelFriendRequest, map[string]any{"viewed": viewed})
	if err != nil || !found {
		t.Fatalf("SetEdgeProperties failed, found=%v err=%v", found, err)
	}

	edges, err := repo.EdgesOf(ctx, a, RelFriendRequest, DirectionOutgoing)
	if err != nil {
		t.Fatalf("EdgesOf failed: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("Expected one request edge, got %d", len(edges))
	}
	if edges[0].Props["message"] != "hey" {
		t.Errorf("Expected message 'hey', got %v", edges[0].Props["message"])
	}
	if _, ok := edges[0].Props["viewed"]; !ok {
		t.Error("Expected viewed property after SetEdgeProperties")
	}

	// An edge that does not exist is reported, not invented
	found, err = repo.SetEdgeProperties(ctx, b, a, RelFriendRequest, map[string]any{"viewed": viewed})
	if err != nil {
		t.Fatalf("SetEdgeProperties failed: %v", err)
	}
	if found {
		t.Error("Expected no b->a request edge")
	}
}

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := "bolt://localhost:7687"
	user := "neo4j"
	password := "password"

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}

func testUserID() int64 {
	// Large offset keeps test users clear of any real ids
	return 1_000_000 + time.Now().UnixNano()%1_000_000
}

func cleanupUsers(ctx context.Context, driver neo4j.DriverWithContext, ids ...int64) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)
	for _, id := range ids {
		_, _ = session.Run(ctx, "MATCH (u:User {user_id: $id}) DETACH DELETE u", map[string]any{"id": id})
	}
}
