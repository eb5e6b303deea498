package repository

import "errors"

// Common repository errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyResolved = errors.New("approval record already resolved")
	ErrDuplicateKey    = errors.New("duplicate key violation")
)
