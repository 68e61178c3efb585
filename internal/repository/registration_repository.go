package repository

import (
	"context"
	"fmt"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/repository/base"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RegistrationRepository struct {
	col *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection("registrations")}
}

// GetByID получает заявку по ID
func (r *RegistrationRepository) GetByID(ctx context.Context, registrationID string) (*model.Registration, error) {
	return r.findOne(ctx, bson.M{"_id": registrationID})
}

// GetByStudentAndCourse получает заявку по паре студент+курс
func (r *RegistrationRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Registration, error) {
	return r.findOne(ctx, bson.M{"student_id": studentID, "course_id": courseID})
}

// GetByStudent получает все заявки студента
func (r *RegistrationRepository) GetByStudent(ctx context.Context, studentID string) ([]*model.Registration, error) {
	return r.find(ctx, bson.M{"student_id": studentID})
}

// GetByCourse получает все заявки на курс
func (r *RegistrationRepository) GetByCourse(ctx context.Context, courseID string) ([]*model.Registration, error) {
	return r.find(ctx, bson.M{"course_id": courseID})
}

// GetByStatus получает заявки по статусу
func (r *RegistrationRepository) GetByStatus(ctx context.Context, status model.RegistrationStatus) ([]*model.Registration, error) {
	return r.find(ctx, bson.M{"status": status})
}

// CountByCourse считает занятые места на курсе.
// Учитываются только pending и approved заявки.
func (r *RegistrationRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{
		"course_id": courseID,
		"status":    bson.M{"$in": bson.A{model.RegistrationStatusPending, model.RegistrationStatusApproved}},
	})
	if err != nil {
		return 0, fmt.Errorf("count registrations by course: %w", err)
	}
	return count, nil
}

// Save сохраняет заявку (upsert)
func (r *RegistrationRepository) Save(ctx context.Context, registration *model.Registration) error {
	doc := *registration
	doc.RegisteredAt = timeutil.ToUTC(registration.RegisteredAt)
	if registration.ApprovedAt != nil {
		utc := timeutil.ToUTC(*registration.ApprovedAt)
		doc.ApprovedAt = &utc
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": registration.ID}, &doc, base.Upsert)
	if err != nil {
		return fmt.Errorf("save registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) findOne(ctx context.Context, filter bson.M) (*model.Registration, error) {
	var registration model.Registration
	err := r.col.FindOne(ctx, filter).Decode(&registration)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	normalizeRegistration(&registration)
	return &registration, nil
}

func (r *RegistrationRepository) find(ctx context.Context, filter bson.M) ([]*model.Registration, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var registrations []*model.Registration
	for cursor.Next(ctx) {
		var registration model.Registration
		if err := cursor.Decode(&registration); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		normalizeRegistration(&registration)
		registrations = append(registrations, &registration)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return registrations, nil
}

func normalizeRegistration(reg *model.Registration) {
	reg.RegisteredAt = timeutil.FromUTC(reg.RegisteredAt)
	if reg.ApprovedAt != nil {
		local := timeutil.FromUTC(*reg.ApprovedAt)
		reg.ApprovedAt = &local
	}
}
