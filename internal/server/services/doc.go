// Package services contains the backend's business logic on top of the
// repositories: account signup and signin with bearer token issue, and the
// per-user saved article collection.
//
// Services speak in common sentinel errors so transports can map them:
//
//   - common.ErrValidation: malformed input
//   - common.ErrorAlreadyExists: signup with a taken email
//   - common.ErrorUnauthorized: wrong credentials
//   - common.ErrorNotFound: absent user or article
//   - common.ErrorForbidden: article owned by someone else
//   - common.ErrorInternal: anything else
package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/newsexplorer/internal/dbx"
)

// withTx runs fn inside a transaction when a database is configured and
// directly otherwise (in-memory repositories ignore the DBTX they are given).
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, db, nil, fn)
}

// conn returns db as a DBTX, or nil when no database is configured, so a nil
// *sql.DB never hides inside a non-nil interface.
func conn(db *sql.DB) dbx.DBTX {
	if db == nil {
		return nil
	}
	return db
}
