// Package upload validates the optional image attached to a note request and
// hands it to the active storage backend.
package upload

import (
	"errors"
	"fmt"
	"io"

	"notekeeper-be/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// FieldName is the only multipart field a file is accepted under.
const FieldName = "image"

// MaxFileSize caps uploads at 5 MiB.
const MaxFileSize = 5 * 1024 * 1024

var (
	ErrInvalidFileType = errors.New("upload: invalid file type, only JPEG, JPG and PNG allowed")
	ErrFileTooLarge    = fmt.Errorf("upload: file exceeds %d byte limit", MaxFileSize)
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type Handler struct {
	backend storage.Backend
}

func NewHandler(backend storage.Backend) *Handler {
	return &Handler{backend: backend}
}

// FromRequest extracts, validates and stores the image field of a multipart
// request. It returns the storage reference, or "" when no file is attached.
// Validation happens before any storage write.
func (h *Handler) FromRequest(ctx *fiber.Ctx) (string, error) {
	fh, err := ctx.FormFile(FieldName)
	if err != nil {
		// No file attached (or not a multipart request at all): no-op.
		return "", nil
	}

	if !allowedTypes[fh.Header.Get("Content-Type")] {
		return "", ErrInvalidFileType
	}
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: failed to open %q: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("upload: failed to read %q: %w", fh.Filename, err)
	}

	return h.backend.Store(ctx.Context(), &storage.Object{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	})
}
