package docsystem

import (
	"context"
	"time"

	docsysSvc "docintake/internal/domain/services/docsystem"

	"github.com/google/uuid"
)

type systemClock struct{}

// NewSystemClock returns a Clock reading the wall clock in UTC.
func NewSystemClock() docsysSvc.Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

type uuidGenerator struct{}

// NewUUIDGenerator returns an IDGenerator producing random (v4) UUIDs.
func NewUUIDGenerator() docsysSvc.IDGenerator { return uuidGenerator{} }

func (uuidGenerator) NewID() string { return uuid.NewString() }

type noPreview struct{}

// NewNoPreviewGenerator returns a PreviewGenerator that never produces a
// preview. Used when no preview backend is configured.
func NewNoPreviewGenerator() docsysSvc.PreviewGenerator { return noPreview{} }

func (noPreview) Generate(context.Context, string, string) (string, error) { return "", nil }
