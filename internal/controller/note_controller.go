package controller

import (
	"errors"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"
	"notekeeper-be/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, authware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListFavorites(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	ToggleFavorite(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Alive(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService   service.INoteService
	uploadHandler *upload.Handler
	isProd        bool
}

func NewNoteController(noteService service.INoteService, uploadHandler *upload.Handler, isProd bool) INoteController {
	return &noteController{
		noteService:   noteService,
		uploadHandler: uploadHandler,
		isProd:        isProd,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, authware fiber.Handler) {
	h := r.Group("/note")
	h.Get("alive", c.Alive)

	h.Use(authware)
	h.Post("add", c.Create)
	h.Get("favourites", c.ListFavorites)
	h.Put("toggle-favorite/:id", c.ToggleFavorite)
	h.Get("/", c.List)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.serverError(ctx, "Error in creating a Note", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	imageRef, err := c.uploadHandler.FromRequest(ctx)
	if err != nil {
		return c.uploadError(ctx, err)
	}

	note, err := c.noteService.Create(ctx.Context(), userId, &req, imageRef)
	if err != nil {
		return c.serverError(ctx, "Error in creating a Note", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.CreateNoteResponse{
		Message: "Created Note successfully",
		Note:    toNoteResponse(note),
	})
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notes, err := c.noteService.List(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error in retrieving notes",
		})
	}

	return ctx.JSON(dto.ListNotesResponse{
		Success: true,
		Notes:   toNoteResponses(notes),
	})
}

func (c *noteController) ListFavorites(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notes, err := c.noteService.ListFavorites(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching favourite notes",
		})
	}

	return ctx.JSON(toNoteResponses(notes))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.UpdateNoteRequest
	// Fields are optional; an empty form is a valid no-field update.
	_ = ctx.BodyParser(&req)
	req.Id = id

	imageRef, err := c.uploadHandler.FromRequest(ctx)
	if err != nil {
		return c.uploadError(ctx, err)
	}

	note, err := c.noteService.Update(ctx.Context(), userId, &req, imageRef)
	if errors.Is(err, service.ErrNoteNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Note not found or unauthorized",
		})
	}
	if err != nil {
		return c.serverError(ctx, "Error in updating note", err)
	}

	return ctx.JSON(dto.UpdateNoteResponse{
		Success: true,
		Message: "Note updated successfully",
		Note:    toNoteResponse(note),
	})
}

func (c *noteController) ToggleFavorite(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	note, err := c.noteService.ToggleFavorite(ctx.Context(), userId, id)
	if errors.Is(err, service.ErrNoteNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Note not found",
		})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error toggling favorite",
		})
	}

	return ctx.JSON(toNoteResponse(note))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	err := c.noteService.Delete(ctx.Context(), userId, id)
	if errors.Is(err, service.ErrNoteNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Note not found or unauthorized",
		})
	}
	if err != nil {
		return c.serverError(ctx, "Error in deleting note", err)
	}

	return ctx.JSON(dto.DeleteNoteResponse{
		Success: true,
		Message: "Note deleted successfully",
	})
}

// Alive is unauthenticated, for infrastructure health checks only.
func (c *noteController) Alive(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.AliveResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC(),
	})
}

func (c *noteController) uploadError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, upload.ErrInvalidFileType):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, upload.ErrFileTooLarge):
		return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		return c.serverError(ctx, "Error storing uploaded image", err)
	}
}

// serverError reports a 500 with the original message shape; internal detail
// is only exposed outside production.
func (c *noteController) serverError(ctx *fiber.Ctx, message string, err error) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if !c.isProd {
		body["error"] = err.Error()
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(body)
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		Id:                 n.Id,
		Title:              n.Title,
		Description:        n.Description,
		Image:              n.Image,
		UserId:             n.UserId,
		IsAudioNote:        n.IsAudioNote,
		AudioTranscription: n.AudioTranscription,
		IsFavorite:         n.IsFavorite,
		CreatedAt:          n.CreatedAt,
		UpdatedAt:          n.UpdatedAt,
	}
}

func toNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		res[i] = toNoteResponse(n)
	}
	return res
}
