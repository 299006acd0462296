package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &models.User{Email: "elise@example.com", Name: "Elise", PasswordHash: []byte("h")})
	require.NoError(t, err)
	_, err = uuid.Parse(u.ID)
	assert.NoError(t, err)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &models.User{Email: "elise@example.com", Name: "Other"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	byEmail, err := repo.GetUserByEmail(ctx, "elise@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elise", byID.Name)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	u, err := repo.Create(ctx, &models.User{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)

	got, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}
