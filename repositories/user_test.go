package repositories

import (
	"testing"

	"message-ledger/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create_And_Get(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openDB(t))

	identity, err := repo.CreateUser("alice@example.com", "$argon2id$hash")
	req.NoError(err)
	req.NotEmpty(identity)

	user, err := repo.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(identity, user.ID)
	req.Equal("$argon2id$hash", user.PasswordHash)
	req.Equal([]string{"user"}, user.Roles)
}

func TestUserRepository_Duplicate_Email(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openDB(t))

	_, err := repo.CreateUser("alice@example.com", "hash")
	req.NoError(err)
	_, err = repo.CreateUser("alice@example.com", "other")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestUserRepository_Unknown_Email(t *testing.T) {
	_, err := NewUserRepository(openDB(t)).GetUserByEmail("ghost@example.com")
	require.ErrorIs(t, err, badger.ErrKeyNotFound)
}
