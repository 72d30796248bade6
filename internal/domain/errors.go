package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrCatalogIntegrity     = errors.New("catalog integrity")
	ErrNoMoreVerses         = errors.New("no more verses")
)
