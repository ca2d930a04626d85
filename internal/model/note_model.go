package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title              string    `gorm:"type:varchar(255);not null"`
	Description        string    `gorm:"type:text;not null"`
	Image              string    `gorm:"type:text"`
	UserId             uuid.UUID `gorm:"type:uuid;not null;index"`
	IsAudioNote        bool      `gorm:"not null;default:false"`
	AudioTranscription string    `gorm:"type:text"`
	IsFavorite         bool      `gorm:"not null;default:false;index"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
