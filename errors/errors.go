package errors

import "fmt"

var (
	ErrAuthenticationFailure = fmt.Errorf("identity proof failed")
	ErrUnauthorizedAccess    = fmt.Errorf("unauthorized access to message")
	ErrForbiddenMarkRead     = fmt.Errorf("only the receiver can mark message as read")
	ErrMessageNotFound       = fmt.Errorf("message not found")
	ErrInvalidCommand        = fmt.Errorf("invalid command")

	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
