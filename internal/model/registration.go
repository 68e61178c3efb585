package model

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"   // Ожидает одобрения администратора
	RegistrationStatusApproved  RegistrationStatus = "approved"  // Одобрена
	RegistrationStatusRejected  RegistrationStatus = "rejected"  // Отклонена
	RegistrationStatusCancelled RegistrationStatus = "cancelled" // Отменена
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Registration — заявка студента на курс.
// Пара (student_id, course_id) уникальна, это закреплено индексом в MongoDB.
type Registration struct {
	ID            string             `bson:"_id" json:"id"`
	StudentID     string             `bson:"student_id" json:"student_id"`
	CourseID      string             `bson:"course_id" json:"course_id"`
	Status        RegistrationStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"payment_status"`
	RegisteredAt  time.Time          `bson:"registered_at" json:"registered_at"`
	ApprovedAt    *time.Time         `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	ApprovedBy    int64              `bson:"approved_by,omitempty" json:"approved_by,omitempty"` // Telegram ID администратора
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NewRegistration создаёт новую заявку в статусе pending / unpaid
func NewRegistration(studentID, courseID string, now time.Time) *Registration {
	return &Registration{
		ID:            uuid.NewString(),
		StudentID:     studentID,
		CourseID:      courseID,
		Status:        RegistrationStatusPending,
		PaymentStatus: PaymentStatusUnpaid,
		RegisteredAt:  now,
	}
}
