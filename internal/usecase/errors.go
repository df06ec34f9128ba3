package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrRequiredSourceMissing = errors.New("required raw source missing")
	ErrDimensionMissing      = errors.New("dimension table missing")
)
