package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/newsexplorer/internal/dbx"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/articles"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same in-memory repositories on every
// call, ignoring the DBTX argument. Data lives until the process exits.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	articles *articles.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		articles: articles.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Articles(dbx.DBTX) articles.Repository { return m.articles }
