package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docintake/internal/auth"
	"docintake/internal/config"
	"docintake/internal/handler"
	"docintake/internal/middleware"
	"docintake/internal/repository/postgres"
	"docintake/internal/repository/sqlite"
	serviceDocsys "docintake/internal/service/docsystem"
	"docintake/internal/storage/s3preview"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"workspace_id", cfg.WorkspaceID,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Category schemas
	schemas := config.DefaultCategorySchemas()
	if cfg.CategorySchemaPath != "" {
		schemas, err = config.LoadCategorySchemas(cfg.CategorySchemaPath)
		if err != nil {
			log.Fatalf("Failed to load category schemas: %v", err)
		}
		logger.Info("category schemas loaded", "path", cfg.CategorySchemaPath)
	}

	// Core services
	clock := serviceDocsys.NewSystemClock()
	ids := serviceDocsys.NewUUIDGenerator()
	recorder := serviceDocsys.NewRecorder(clock, ids)
	normalizer := serviceDocsys.NewNormalizer(logger)

	deps := serviceDocsys.WorkspaceDeps{
		Folders:  serviceDocsys.NewFolderService(recorder, clock, ids, logger),
		Files:    serviceDocsys.NewFileService(recorder, clock, ids, schemas, logger),
		Codec:    serviceDocsys.NewCodec(normalizer),
		Differ:   serviceDocsys.NewDiffer(clock, ids),
		Feed:     serviceDocsys.NewFeed(cfg.NotificationFeedSize),
		Previews: serviceDocsys.NewNoPreviewGenerator(),
		Clock:    clock,
	}

	// Preview storage
	var previewStore *s3preview.Store
	if cfg.S3Bucket != "" {
		previewStore = s3preview.New(s3preview.Config{
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			TTL:          cfg.PreviewTTL,
		}, logger)
		deps.Previews = previewStore
		logger.Info("preview storage enabled", "bucket", cfg.S3Bucket)
	} else {
		logger.Warn("S3_BUCKET not set, previews disabled")
	}

	// Persistence
	var auditHandler *handler.AuditHandler
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()
		logger.Info("database connected")

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.RunSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		txManager := postgres.NewTransactionManager(pool, logger)
		activityRepo := postgres.NewActivityRepository(repoConfig)
		uploadRepo := postgres.NewUploadHistoryRepository(repoConfig)

		deps.Snapshots = postgres.NewSnapshotRepository(repoConfig, txManager)
		deps.Activity = activityRepo
		deps.Uploads = uploadRepo
		auditHandler = handler.NewAuditHandler(cfg.WorkspaceID, activityRepo, uploadRepo, logger)
	} else if cfg.SQLitePath != "" {
		store, err := sqlite.Open(sqlite.Config{Path: cfg.SQLitePath}, logger)
		if err != nil {
			log.Fatalf("Failed to open sqlite database: %v", err)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate sqlite database: %v", err)
		}
		logger.Info("sqlite database opened", "path", cfg.SQLitePath)

		activityRepo := sqlite.NewActivityRepository(store)
		uploadRepo := sqlite.NewUploadHistoryRepository(store)

		deps.Snapshots = sqlite.NewSnapshotRepository(store)
		deps.Activity = activityRepo
		deps.Uploads = uploadRepo
		auditHandler = handler.NewAuditHandler(cfg.WorkspaceID, activityRepo, uploadRepo, logger)
	} else {
		logger.Warn("DATABASE_URL and SQLITE_PATH not set, running without persistence")
	}

	workspace := serviceDocsys.NewWorkspace(cfg.WorkspaceID, deps, logger)
	if err := workspace.Load(ctx); err != nil {
		log.Fatalf("Failed to load workspace: %v", err)
	}
	logger.Info("workspace loaded", "revision", workspace.Snapshot().Revision)

	// Authentication
	authMiddleware, closeAuth := setupAuth(ctx, cfg, logger)
	defer closeAuth()

	// Handlers
	folderHandler := handler.NewFolderHandler(workspace, logger)
	fileHandler := handler.NewFileHandler(workspace, logger)
	notificationHandler := handler.NewNotificationHandler(workspace, logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("POST /api/folders/{id}/archive", folderHandler.ArchiveFolder)
	mux.HandleFunc("POST /api/folders/{id}/restore", folderHandler.RestoreFolder)
	mux.HandleFunc("DELETE /api/folders/{id}/purge", folderHandler.PurgeFolder)

	// File routes
	mux.HandleFunc("GET /api/files", fileHandler.SearchFiles)
	mux.HandleFunc("POST /api/files/move", fileHandler.MoveFiles)
	mux.HandleFunc("POST /api/files/bulk/field", fileHandler.BulkSetField)
	mux.HandleFunc("POST /api/files/bulk/delete", fileHandler.BulkDelete)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("PATCH /api/files/{id}", fileHandler.EditMetadata)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)
	mux.HandleFunc("GET /api/files/{id}/history", fileHandler.GetHistory)
	mux.HandleFunc("POST /api/files/{id}/restore", fileHandler.RestoreFile)
	mux.HandleFunc("POST /api/files/{id}/resubmit", fileHandler.ResubmitFile)
	mux.HandleFunc("POST /api/files/{id}/review", fileHandler.ReviewFile)
	mux.HandleFunc("POST /api/files/{id}/comment", fileHandler.CommentFile)
	mux.HandleFunc("POST /api/files/{id}/lock", fileHandler.LockFile)
	mux.HandleFunc("POST /api/files/{id}/unlock", fileHandler.UnlockFile)
	mux.HandleFunc("POST /api/files/{id}/view", fileHandler.RecordView)
	mux.HandleFunc("POST /api/files/{id}/download", fileHandler.RecordDownload)
	mux.HandleFunc("POST /api/uploads", fileHandler.UploadFiles)

	// Notification routes
	mux.HandleFunc("GET /api/notifications", notificationHandler.ListNotifications)
	mux.HandleFunc("GET /api/notifications/stream", notificationHandler.StreamNotifications)
	mux.HandleFunc("POST /api/notifications/read-all", notificationHandler.MarkAllRead)
	mux.HandleFunc("POST /api/notifications/{id}/read", notificationHandler.MarkRead)

	if previewStore != nil {
		previewHandler := handler.NewPreviewHandler(workspace, previewStore, logger)
		mux.HandleFunc("GET /api/files/{id}/preview", previewHandler.GetPreviewURL)
		mux.HandleFunc("POST /api/uploads/presign", previewHandler.PresignUpload)
	}
	if auditHandler != nil {
		mux.HandleFunc("GET /api/activity", auditHandler.ListActivity)
		mux.HandleFunc("GET /api/uploads", auditHandler.ListUploads)
	}

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = authMiddleware(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOriginList(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupAuth picks JWKS verification when configured, otherwise a fixed
// development actor.
func setupAuth(ctx context.Context, cfg *config.Config, logger *slog.Logger) (func(http.Handler) http.Handler, func()) {
	if cfg.JWKSURL == "" {
		if cfg.Environment == "prod" {
			log.Fatal("JWKS_URL is required in prod")
		}
		actor := auth.Actor{ID: cfg.DevActor, Email: cfg.DevActor, Role: auth.ParseRole(cfg.DevRole)}
		logger.Warn("JWKS_URL not set, all requests run as dev actor",
			"actor", actor.ID,
			"role", actor.Role,
		)
		return middleware.DevAuthMiddleware(actor), func() {}
	}

	verifier, err := auth.NewJWTVerifier(ctx, cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	return middleware.AuthMiddleware(verifier, logger), func() { _ = verifier.Close() }
}
