// Package services contains application services for the newsexplorer
// client. This file defines the token slot: the single persisted credential
// written by sign-in, sign-out and startup.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/newsexplorer/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
)

// TokenStore persists the session token.
//
// Contract:
//   - Token: returns "" and no error when nothing is stored.
//   - SetToken: replaces the stored token.
//   - RemoveToken: succeeds when nothing is stored.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	RemoveToken(ctx context.Context) error
}

type tokenStore struct {
	repo metadata.Repository
}

// NewTokenStore keeps the token under common.TokenStorageKey in repo.
func NewTokenStore(repo metadata.Repository) TokenStore {
	return &tokenStore{repo: repo}
}

func (s *tokenStore) Token(ctx context.Context) (string, error) {
	tok, err := s.repo.Get(ctx, common.TokenStorageKey)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

func (s *tokenStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.RemoveToken(ctx)
	}
	if err := s.repo.Put(ctx, common.TokenStorageKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *tokenStore) RemoveToken(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in process memory. It backs clients
// configured without a data directory.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokenStore) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokenStore) RemoveToken(context.Context) error {
	return m.SetToken(context.Background(), "")
}
