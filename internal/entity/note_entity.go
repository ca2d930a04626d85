package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id                 uuid.UUID
	Title              string
	Description        string
	Image              string // storage reference, empty when no image attached
	UserId             uuid.UUID
	IsAudioNote        bool
	AudioTranscription string
	IsFavorite         bool
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
