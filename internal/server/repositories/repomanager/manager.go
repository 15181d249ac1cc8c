package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkoloskov/wellspring/internal/dbx"
	"github.com/dkoloskov/wellspring/internal/server/repositories/sessions"
	"github.com/dkoloskov/wellspring/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
