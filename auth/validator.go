package auth

import (
	"fmt"
	"unicode"

	"message-ledger/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=12,max=72"`
}

func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	if !isPasswordComplex(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// SendRequest is checked at the transport edge, before the identity proof.
type SendRequest struct {
	Sender   string `validate:"required,max=256"`
	Receiver string `validate:"required,max=256"`
	Content  string
}

// ValidateSend rejects empty identities and, when maxContentLength is
// positive, oversized payloads.
func ValidateSend(req SendRequest, maxContentLength int) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	if maxContentLength > 0 {
		if err := validate.Var(req.Content, fmt.Sprintf("max=%d", maxContentLength)); err != nil {
			return fmt.Errorf("%w: content longer than %d characters", errors.ErrInvalidCommand, maxContentLength)
		}
	}
	return nil
}

// ValidateIdentity rejects an empty identity handle.
func ValidateIdentity(identity string) error {
	if err := validate.Var(identity, "required,max=256"); err != nil {
		return fmt.Errorf("%w: identity %v", errors.ErrInvalidCommand, err)
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
