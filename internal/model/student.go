package model

import (
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

type Student struct {
	ID               string    `bson:"_id" json:"id"`
	TelegramID       int64     `bson:"telegram_id" json:"telegram_id"`
	FullName         string    `bson:"full_name" json:"full_name"`
	PhoneNumber      string    `bson:"phone_number" json:"phone_number"`
	Gender           string    `bson:"gender,omitempty" json:"gender,omitempty"`
	Age              int       `bson:"age,omitempty" json:"age,omitempty"`
	Residence        string    `bson:"residence,omitempty" json:"residence,omitempty"`
	EducationLevel   string    `bson:"education_level,omitempty" json:"education_level,omitempty"`
	Specialization   string    `bson:"specialization,omitempty" json:"specialization,omitempty"`
	ProfileCompleted bool      `bson:"profile_completed" json:"profile_completed"`
	Language         Language  `bson:"language" json:"language"`
	RegisteredAt     time.Time `bson:"registered_at" json:"registered_at"`
}

// NewStudent создаёт нового студента с языком по умолчанию (арабский)
func NewStudent(telegramID int64, fullName, phoneNumber string, now time.Time) *Student {
	return &Student{
		ID:           uuid.NewString(),
		TelegramID:   telegramID,
		FullName:     fullName,
		PhoneNumber:  phoneNumber,
		Language:     LanguageArabic,
		RegisteredAt: now,
	}
}
