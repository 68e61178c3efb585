package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"     // Черновик, не виден студентам
	CourseStatusPublished CourseStatus = "published" // Открыт для записи
	CourseStatusOngoing   CourseStatus = "ongoing"   // Идёт сейчас
	CourseStatusCompleted CourseStatus = "completed" // Завершён
	CourseStatusCancelled CourseStatus = "cancelled" // Отменён
)

type Course struct {
	ID                string       `bson:"_id" json:"id"`
	Name              string       `bson:"name" json:"name"`
	Description       string       `bson:"description" json:"description"`
	Instructor        string       `bson:"instructor" json:"instructor"`
	StartDate         time.Time    `bson:"start_date" json:"start_date"`
	EndDate           time.Time    `bson:"end_date" json:"end_date"`
	Price             float64      `bson:"price" json:"price"`
	MaxStudents       int          `bson:"max_students" json:"max_students"`
	Status            CourseStatus `bson:"status" json:"status"`
	CreatedAt         time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `bson:"updated_at" json:"updated_at"`
	MaterialsFolderID string       `bson:"materials_folder_id,omitempty" json:"materials_folder_id,omitempty"` // Папка Google Drive
	TargetAudience    string       `bson:"target_audience,omitempty" json:"target_audience,omitempty"`
	DurationHours     int          `bson:"duration_hours,omitempty" json:"duration_hours,omitempty"`
}

// NewCourse создаёт новый курс со статусом draft
func NewCourse(name, description, instructor string, startDate, endDate time.Time, price float64, maxStudents int, now time.Time) *Course {
	return &Course{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Instructor:  instructor,
		StartDate:   startDate,
		EndDate:     endDate,
		Price:       price,
		MaxStudents: maxStudents,
		Status:      CourseStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsAvailable проверяет открыт ли курс для записи
func (c *Course) IsAvailable() bool {
	return c.Status == CourseStatusPublished || c.Status == CourseStatusOngoing
}
