package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors surfaced by the repository. Handlers map these onto HTTP
// status codes; everything else is an internal failure.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record was modified concurrently")
)

// translate maps gorm's not-found onto the repository sentinel so callers
// never import gorm to classify errors.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
