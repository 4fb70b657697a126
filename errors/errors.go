package errors

import "fmt"

var (
	ErrNotFound           = fmt.Errorf("record not found")
	ErrUnknownCollection  = fmt.Errorf("unknown collection")
	ErrUnknownIndex       = fmt.Errorf("unknown index")
	ErrInvalidRecord      = fmt.Errorf("record createdAt is missing or before the epoch")
	ErrStoreUnavailable   = fmt.Errorf("primary storage unavailable")
	ErrInvalidAction      = fmt.Errorf("action is not part of the audit enum")
	ErrInvalidTransition  = fmt.Errorf("no transition for this state and action")
	ErrEmptyComment       = fmt.Errorf("request_changes requires a comment")
	ErrImportFormat       = fmt.Errorf("import file is not a valid export envelope")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)
