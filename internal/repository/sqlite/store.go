// Package sqlite is the single-file persistence backend used when no
// Postgres database is configured. It implements the same repository
// ports as the postgres package on top of gorm.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds SQLite settings
type Config struct {
	Path     string
	LogLevel gormlogger.LogLevel
}

// Store owns the gorm connection shared by the repositories.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open opens (or creates) the database file
func Open(cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = gormlogger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Store{db: db, logger: logger}, nil
}

// Migrate creates or updates the tables
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&snapshotRow{},
		&activityRow{},
		&uploadRow{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	s.logger.Debug("sqlite schema migrated")
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

type snapshotRow struct {
	WorkspaceID string `gorm:"primaryKey;type:text"`
	Revision    int64  `gorm:"not null"`
	Data        []byte `gorm:"not null"`
	UpdatedAt   time.Time
}

func (snapshotRow) TableName() string { return "workspace_snapshots" }

type activityRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	WorkspaceID string `gorm:"type:text;not null;index:idx_activity_workspace"`
	Action      string `gorm:"type:text;not null"`
	Details     string `gorm:"type:text;not null"`
	CreatedAt   time.Time
}

func (activityRow) TableName() string { return "activity_log" }

type uploadRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	WorkspaceID string    `gorm:"type:text;not null;index:idx_uploads_workspace"`
	FileID      string    `gorm:"type:text;not null"`
	FolderID    string    `gorm:"type:text;not null"`
	Filename    string    `gorm:"type:text;not null"`
	Extension   string    `gorm:"type:text"`
	PerformedBy string    `gorm:"type:text"`
	SourceTag   string    `gorm:"type:text"`
	Status      string    `gorm:"type:text"`
	UploadedAt  time.Time `gorm:"index:idx_uploads_workspace"`
}

func (uploadRow) TableName() string { return "upload_history" }
