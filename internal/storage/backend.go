// Package storage abstracts where uploaded note images physically live.
// Exactly one backend is selected at startup; operation code never branches
// on which one is active.
package storage

import (
	"context"
	"errors"
)

// ErrForeignReference is returned by Delete when the reference was not
// produced by the active backend.
var ErrForeignReference = errors.New("storage: reference not managed by this backend")

// Object is an uploaded binary plus the metadata needed to store it.
type Object struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Backend stores uploaded images and reclaims them when a note is updated,
// deleted, or a failed operation has to roll back.
type Backend interface {
	// Store persists the object under a collision-resistant name and returns
	// the reference recorded on the note (relative path or public URL).
	Store(ctx context.Context, obj *Object) (string, error)
	// Delete reclaims the object a previous Store returned the reference for.
	// Deleting an already-gone object is not an error.
	Delete(ctx context.Context, ref string) error
}
