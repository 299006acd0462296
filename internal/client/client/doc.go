// Package client talks to the newsexplorer backend.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): sign-up, sign-in,
//     current user, and saved-article list/create/delete.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     bearer token and normalises the user and article wire shapes.
//  3. A gRPC health probe (see HealthChecker) used to show whether the
//     backend is reachable.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) opening the
//     client SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which unwraps to one of the
// sentinels in package common:
//
//	400       -> common.ErrValidation
//	401, 403  -> common.ErrAuthFailure
//	404       -> common.ErrNotFound
//	409       -> common.ErrEmailNotAvailable
//	other     -> common.ErrServer
//
// Transport failures wrap common.ErrNetworkFailure.
//
// All operations accept context.Context and honor cancellation. HTTPClient
// and HealthChecker are safe for concurrent use.
package client
