package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"docintake/internal/config"
	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	"docintake/internal/domain/repositories"
	"docintake/internal/repository/postgres"
	serviceDocsys "docintake/internal/service/docsystem"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

//go:embed fixtures/legacy_store.json
var legacyFixture []byte

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the workspace")
	clearData := flag.Bool("clear-data", false, "Clear the workspace snapshot and audit rows (keep schema)")
	importFile := flag.String("file", "", "Import a stored workspace export instead of the built-in fixture")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding workspace %q (environment: %s, prefix: %s)", cfg.WorkspaceID, cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.RunSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := clearWorkspaceData(ctx, pool, tables, cfg.WorkspaceID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	data := legacyFixture
	if *importFile != "" {
		data, err = os.ReadFile(*importFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *importFile, err)
		}
	}

	// Decoding runs the normalizer, so any stored shape comes out canonical
	codec := serviceDocsys.NewCodec(serviceDocsys.NewNormalizer(logger))
	store, err := codec.Deserialize(data, models.CategoryExpenses)
	if err != nil {
		log.Fatalf("Failed to decode workspace data: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	snapshots := postgres.NewSnapshotRepository(repoConfig, postgres.NewTransactionManager(pool, logger))

	var expected int64
	existing, err := snapshots.Load(ctx, cfg.WorkspaceID)
	switch {
	case err == nil:
		expected = existing.Revision
	case errors.Is(err, domain.ErrNotFound):
	default:
		log.Fatalf("Failed to read current snapshot: %v", err)
	}

	store.WorkspaceID = cfg.WorkspaceID
	store.Revision = expected + 1
	encoded, err := codec.Serialize(store)
	if err != nil {
		log.Fatalf("Failed to encode workspace: %v", err)
	}

	snap := &repositories.StoredSnapshot{
		WorkspaceID: cfg.WorkspaceID,
		Revision:    store.Revision,
		Data:        encoded,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := snapshots.Save(ctx, snap, expected); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}

	files := 0
	for _, f := range store.Folders {
		files += len(f.Files)
		log.Printf("✅ %s / %s: %d files", f.Category, f.FolderName, len(f.Files))
	}
	log.Printf("🎉 Seeding complete! %d folders, %d files, revision %d", len(store.Folders), files, store.Revision)
}

// dropAllTables drops every table owned by this service
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.UploadHistory, tables.ActivityLog, tables.Snapshots} {
		if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE`); err != nil {
			return err
		}
	}
	return nil
}

// clearWorkspaceData removes one workspace's snapshot and audit rows
func clearWorkspaceData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, workspaceID string) error {
	for _, table := range []string{tables.UploadHistory, tables.ActivityLog, tables.Snapshots} {
		if _, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE workspace_id = $1`, workspaceID); err != nil {
			return err
		}
	}
	return nil
}
