// Package store is the persistence layer for maps, employees and
// locations. A Store is injected into the HTTP layer at construction so
// handlers never reach for a shared global connection.
package store

import (
	"fmt"

	"gorm.io/gorm"
)

// NotFoundError reports a lookup against a missing entity.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error, resource string) error {
	if err == gorm.ErrRecordNotFound {
		return NotFoundError{Resource: resource}
	}
	return err
}
