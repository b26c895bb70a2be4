package services

import (
	"fmt"

	"message-ledger/auth"
	"message-ledger/domain"
	"message-ledger/errors"
	"message-ledger/repositories"
)

type IAuthService interface {
	Login(email, password string) (Session, error)
	Register(email, password string) (Session, error)
}

// Session binds a ledger identity to a bearer token proving it.
type Session struct {
	Identity domain.Identity
	Token    string
}

type AuthService struct {
	userRepository repositories.IUserRepository
	tokens         *auth.TokenManager
}

func NewAuthService(repo repositories.IUserRepository, tokens *auth.TokenManager) IAuthService {
	return &AuthService{userRepository: repo, tokens: tokens}
}

func (s *AuthService) Register(email, password string) (Session, error) {
	// 1. Validate the credentials (email format, password strength)
	// Checked before the costly Argon2id hashing.
	if err := auth.ValidateRegister(auth.RegisterRequest{Email: email, Password: password}); err != nil {
		return Session{}, fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// 2. Hash the password with Argon2id
	// The repository never sees the plain password.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist the account, which mints the ledger identity
	identity, err := s.userRepository.CreateUser(email, hashedPassword)
	if err != nil {
		return Session{}, err // ErrUserAlreadyExists when the email is taken
	}

	// 4. Issue the first session token for that identity
	token, err := s.tokens.GenerateToken(identity, []string{"user"})
	if err != nil {
		return Session{}, errors.ErrTokenGeneration
	}
	return Session{Identity: identity, Token: token}, nil
}

func (s *AuthService) Login(email, password string) (Session, error) {
	// 1. Look the account up by email
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return Session{}, errors.ErrInvalidCredentials
	}

	// 2. Compare the password with the stored hash
	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return Session{}, errors.ErrInvalidCredentials
	}

	// 3. Issue a token bound to the account's identity
	token, err := s.tokens.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return Session{}, errors.ErrTokenGeneration
	}
	return Session{Identity: user.ID, Token: token}, nil
}
