package service

import "errors"

const ErrCodeDatabase = "DATABASE_ERROR"

var (
	ErrWalletNotFound = errors.New("WALLET_NOT_FOUND")
	ErrOutOfWindow    = errors.New("OUT_OF_WINDOW")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
