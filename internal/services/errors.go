package services

import "github.com/abrezinsky/totebet/internal/errors"

// Service errors
var (
	ErrBetIDRequired = errors.Validation("bet id is required")
)

func errBetNotFound(id string) error {
	return errors.NotFoundf("bet %s not found", id)
}

func errJournal(err error, msg string) error {
	return errors.Wrap(err, errors.ErrInternal, msg)
}
