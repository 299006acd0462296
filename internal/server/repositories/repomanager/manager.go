package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/newsexplorer/internal/dbx"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/articles"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Articles(db dbx.DBTX) articles.Repository
}
