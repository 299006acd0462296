// Package cli provides the interactive newsexplorer command-line client.
//
// It wires configuration, the local token database, the backend API client,
// the news searcher and an interactive REPL. Typical flow: restore the
// stored session, start a background connectivity watcher, and execute user
// commands.
//
// Key features:
//   - Sign in / sign up / sign out through the sign-in and sign-up forms
//   - Search news, reveal more results, save and unsave articles
//   - List saved articles with their keyword summary
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// One-shot subcommands share the same App; see NewRootCmd.
package cli
