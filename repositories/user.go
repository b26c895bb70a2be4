//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"message-ledger/domain"
	"message-ledger/errors"
	pb "message-ledger/proto/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(email, hashedPassword string) (domain.Identity, error)
	GetUserByEmail(email string) (User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is an account owning one ledger identity.
type User struct {
	ID           domain.Identity
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// CreateUser persists the account and returns the freshly minted identity.
func (u UserRepository) CreateUser(email, hashedPassword string) (domain.Identity, error) {
	identity := domain.Identity(uuid.NewString())
	record := &pb.User{
		Id:           identity.String(),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().Unix(),
		Roles:        []string{"user"},
	}

	err := u.db.Update(func(txn *badger.Txn) error {
		key := userKey(email)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrUserAlreadyExists
		}
		return txn.Set(key, record.Marshal())
	})
	if err != nil {
		return "", err
	}
	return identity, nil
}

// GetUserByEmail returns badger.ErrKeyNotFound for unknown accounts.
func (u UserRepository) GetUserByEmail(email string) (User, error) {
	var record pb.User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(email))
		if err != nil {
			return err
		}
		return item.Value(record.Unmarshal)
	})
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", email, err)
	}
	return toUser(&record), nil
}

func userKey(email string) []byte {
	return []byte("user:" + email)
}

func toUser(record *pb.User) User {
	return User{
		ID:           domain.Identity(record.Id),
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		Roles:        record.Roles,
		CreatedAt:    time.Unix(record.CreatedAt, 0).UTC(),
	}
}
