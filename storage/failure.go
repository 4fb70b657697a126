package storage

import (
	stderrors "errors"

	"procdesk/errors"
)

// isEngineFailure separates backend failures, which warrant the permanent
// fallback downgrade, from caller mistakes like addressing a collection or
// index that does not exist.
func isEngineFailure(err error) bool {
	return !stderrors.Is(err, errors.ErrUnknownCollection) &&
		!stderrors.Is(err, errors.ErrUnknownIndex) &&
		!stderrors.Is(err, errors.ErrInvalidRecord)
}
