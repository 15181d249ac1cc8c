package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkoloskov/wellspring/internal/server/models"
	"github.com/dkoloskov/wellspring/internal/server/repositories/repomanager"
	"github.com/dkoloskov/wellspring/internal/server/repositories/sessions"
	"github.com/dkoloskov/wellspring/internal/shared"
	"github.com/google/uuid"
)

// SaveDraftInput is the payload of the save-draft operation. Nil pointer
// fields (and nil Tags) are "not supplied": on create they fall back to
// defaults, on update they keep the stored values. ID empty means create.
type SaveDraftInput struct {
	ID          string
	Title       string
	Tags        models.TagList
	JSONFileURL *string
	Description *string
	Duration    *int
	Level       *models.Level
	Status      *models.Status
}

// SessionService implements the draft/publish lifecycle over owner-scoped
// session records. Every mutating operation resolves to a single atomic
// (id, owner) predicate at the store; the refresh of UpdatedAt is an explicit
// step here, not a storage-layer hook.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager) *SessionService {
	return &SessionService{db: db, repomanager: m, now: time.Now}
}

// ListPublic returns every published record, annotated with the owner's
// email, newest-created first.
func (s *SessionService) ListPublic(ctx context.Context) ([]*models.PublishedSession, error) {
	return s.repomanager.Sessions(s.db).ListPublished(ctx)
}

// ListOwn returns the caller's records, most recently updated first.
func (s *SessionService) ListOwn(ctx context.Context, userID string) ([]*models.Session, error) {
	return s.repomanager.Sessions(s.db).ListByOwner(ctx, userID)
}

// GetOwn fetches one record owned by the caller. A record owned by someone
// else is indistinguishable from a missing one.
func (s *SessionService) GetOwn(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	return s.repomanager.Sessions(s.db).GetOwned(ctx, userID, sessionID)
}

// SaveDraft creates a record (no id supplied) or updates an owned one.
// On create, unset fields default: status draft, level all, duration 30.
// On update, only supplied fields are applied; status is written as supplied,
// which is also how a published record returns to draft.
func (s *SessionService) SaveDraft(ctx context.Context, userID string, in SaveDraftInput) (*models.Session, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, shared.ErrorValidation
	}

	repo := s.repomanager.Sessions(s.db)
	now := s.now()

	if in.ID == "" {
		session := &models.Session{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     in.Title,
			Tags:      in.Tags,
			Status:    models.StatusDraft,
			Duration:  models.DefaultDuration,
			Level:     models.LevelAll,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if session.Tags == nil {
			session.Tags = models.TagList{}
		}
		if in.JSONFileURL != nil {
			session.JSONFileURL = *in.JSONFileURL
		}
		if in.Description != nil {
			session.Description = *in.Description
		}
		if in.Duration != nil {
			session.Duration = *in.Duration
		}
		if in.Level != nil {
			session.Level = *in.Level
		}
		if in.Status != nil {
			session.Status = *in.Status
		}
		if err := repo.Create(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	return repo.UpdateOwned(ctx, userID, in.ID, sessions.Patch{
		Title:       in.Title,
		Tags:        in.Tags,
		JSONFileURL: in.JSONFileURL,
		Description: in.Description,
		Duration:    in.Duration,
		Level:       in.Level,
		Status:      in.Status,
		UpdatedAt:   now,
	})
}

// Publish marks an owned record published. Publishing an already-published
// record succeeds and leaves it published.
func (s *SessionService) Publish(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, shared.ErrorValidation
	}
	return s.repomanager.Sessions(s.db).PublishOwned(ctx, userID, sessionID, s.now())
}

// Delete removes an owned record from either lifecycle state.
func (s *SessionService) Delete(ctx context.Context, userID, sessionID string) error {
	if err := s.repomanager.Sessions(s.db).DeleteOwned(ctx, userID, sessionID); err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", shared.ErrorInternal, err)
	}
	return nil
}
