package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title              string `form:"title" validate:"required"`
	Description        string `form:"description" validate:"required"`
	IsAudioNote        bool   `form:"isAudioNote"`
	AudioTranscription string `form:"audioTranscription"`
}

// UpdateNoteRequest carries partial updates: an empty field means
// "leave unchanged", never "clear".
type UpdateNoteRequest struct {
	Id          uuid.UUID
	Title       string `form:"title"`
	Description string `form:"description"`
}

type NoteResponse struct {
	Id                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Image              string     `json:"image"`
	UserId             uuid.UUID  `json:"userId"`
	IsAudioNote        bool       `json:"isAudioNote"`
	AudioTranscription string     `json:"audioTranscription"`
	IsFavorite         bool       `json:"isFavorite"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

type CreateNoteResponse struct {
	Message string        `json:"message"`
	Note    *NoteResponse `json:"note"`
}

type ListNotesResponse struct {
	Success bool            `json:"success"`
	Notes   []*NoteResponse `json:"Notes"`
}

type UpdateNoteResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Note    *NoteResponse `json:"note"`
}

type DeleteNoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AliveResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
