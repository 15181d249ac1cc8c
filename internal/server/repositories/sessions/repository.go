package sessions

import (
	"context"
	"time"

	"github.com/dkoloskov/wellspring/internal/server/models"
)

// Patch carries the fields applied by an owner-scoped update. Nil pointer
// fields (and nil Tags) keep the stored value; Title is always written since
// it is required on every save.
type Patch struct {
	Title       string
	Tags        models.TagList
	JSONFileURL *string
	Description *string
	Duration    *int
	Level       *models.Level
	Status      *models.Status
	UpdatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	UpdateOwned(ctx context.Context, userID, id string, patch Patch) (*models.Session, error)
	GetOwned(ctx context.Context, userID, id string) (*models.Session, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Session, error)
	ListPublished(ctx context.Context) ([]*models.PublishedSession, error)
	PublishOwned(ctx context.Context, userID, id string, updatedAt time.Time) (*models.Session, error)
	DeleteOwned(ctx context.Context, userID, id string) error
}
