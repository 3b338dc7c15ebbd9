package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"friendgraph/backend/internal/graph"
	"friendgraph/backend/pkg/config"
	"friendgraph/backend/pkg/logger"
)

// Demo user ids created by default; matches the canonical request walkthrough
var defaultDemoIDs = []int64{900, 901, 902}

func main() {
	skipDemo := flag.Bool("skip-demo", false, "Only create constraints and indexes, no demo users")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Create constraints
	log.Info("Creating constraints...")
	if err := createConstraints(ctx, driver); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	// Create indexes for better performance
	log.Info("Creating indexes...")
	if err := createIndexes(ctx, driver); err != nil {
		log.Warn("Failed to create some indexes (may already exist)", zap.Error(err))
	}

	if *skipDemo {
		log.Info("Seeding complete (demo users skipped)")
		return
	}

	repo := graph.NewRepository(driver)

	log.Info("Creating demo users", zap.Int64s("user_ids", defaultDemoIDs))
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range defaultDemoIDs {
		id := id
		g.Go(func() error {
			_, err := repo.CreateUser(gctx, id, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Failed to create demo users", zap.Error(err))
	}

	log.Info("Seeding complete")
}

func createConstraints(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.user_id IS UNIQUE",
		"CREATE CONSTRAINT facebook_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.facebook_id IS UNIQUE",
	}

	for _, constraint := range constraints {
		if _, err := session.Run(ctx, constraint, nil); err != nil {
			return err
		}
	}
	return nil
}

func createIndexes(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	indexes := []string{
		"CREATE INDEX friend_request_created IF NOT EXISTS FOR ()-[r:FRIEND_REQUEST]-() ON (r.created)",
		"CREATE INDEX friend_request_id IF NOT EXISTS FOR ()-[r:FRIEND_REQUEST]-() ON (r.id)",
	}

	for _, index := range indexes {
		if _, err := session.Run(ctx, index, nil); err != nil {
			return err
		}
	}
	return nil
}
