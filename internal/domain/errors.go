package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateReference = errors.New("duplicate order reference")
	ErrNoJarAvailable     = errors.New("no jar available")
)
