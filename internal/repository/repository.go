// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and map driver errors to the
// sentinels below so services never see driver types.
package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a foreign key blocks the write.
	ErrReferenced = errors.New("record is referenced")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
