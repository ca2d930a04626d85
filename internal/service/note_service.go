package service

import (
	"context"
	"errors"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/storage"

	"github.com/google/uuid"
)

// ErrNoteNotFound covers both a missing note and one owned by someone else.
// Callers must not be able to tell the two apart.
var ErrNoteNotFound = errors.New("note not found")

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest, imageRef string) (*entity.Note, error)
	List(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error)
	ListFavorites(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest, imageRef string) (*entity.Note, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Note, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	backend    storage.Backend
	log        logger.ILogger
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, backend storage.Backend, log logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		backend:    backend,
		log:        log,
	}
}

// Create persists a new note owned by userId. imageRef is the reference the
// upload handler already stored, or "" for an imageless note; if persistence
// fails the stored file is reclaimed so it cannot be orphaned.
func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest, imageRef string) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Id:                 uuid.New(),
		Title:              req.Title,
		Description:        req.Description,
		Image:              imageRef,
		UserId:             userId,
		IsAudioNote:        req.IsAudioNote,
		AudioTranscription: req.AudioTranscription,
		CreatedAt:          time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		s.reclaim(ctx, imageRef, "create rollback")
		return nil, err
	}

	return &note, nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (s *noteService) ListFavorites(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.IsFavorite{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

// Update applies the non-empty fields of req; empty means "leave unchanged".
// A non-empty imageRef replaces the stored image, reclaiming the old one.
func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest, imageRef string) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		s.reclaim(ctx, imageRef, "update rollback")
		return nil, err
	}
	if note == nil {
		// The file was stored before ownership could be checked.
		s.reclaim(ctx, imageRef, "update rollback")
		return nil, ErrNoteNotFound
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Description != "" {
		note.Description = req.Description
	}

	oldImage := ""
	if imageRef != "" {
		oldImage = note.Image
		note.Image = imageRef
	}

	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		s.reclaim(ctx, imageRef, "update rollback")
		return nil, err
	}

	// The note no longer references the old image; reclaim it.
	if oldImage != "" {
		s.reclaim(ctx, oldImage, "superseded image")
	}

	return note, nil
}

// Delete removes the note and reclaims its stored image. Policy: when the
// storage delete fails we log and still delete the record, accepting an
// orphaned blob over a delete request the user cannot complete.
func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}

	if note.Image != "" {
		s.reclaim(ctx, note.Image, "note delete")
	}

	return uow.NoteRepository().Delete(ctx, note.Id)
}

func (s *noteService) ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	note.IsFavorite = !note.IsFavorite
	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// reclaim deletes a stored image best-effort: failures are logged, never
// propagated, so they cannot abort the enclosing operation.
func (s *noteService) reclaim(ctx context.Context, ref, reason string) {
	if ref == "" {
		return
	}
	if err := s.backend.Delete(ctx, ref); err != nil {
		s.log.Warn("note", "Failed to reclaim stored image", map[string]interface{}{
			"reference": ref,
			"reason":    reason,
			"error":     err.Error(),
		})
	}
}
