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

type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection("students")}
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, studentID string) (*model.Student, error) {
	return r.findOne(ctx, bson.M{"_id": studentID})
}

// GetByTelegramID получает студента по Telegram ID
func (r *StudentRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error) {
	return r.findOne(ctx, bson.M{"telegram_id": telegramID})
}

// GetAll получает всех студентов
func (r *StudentRepository) GetAll(ctx context.Context) ([]*model.Student, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []*model.Student
	for cursor.Next(ctx) {
		var student model.Student
		if err := cursor.Decode(&student); err != nil {
			return nil, fmt.Errorf("decode student: %w", err)
		}
		student.RegisteredAt = timeutil.FromUTC(student.RegisteredAt)
		students = append(students, &student)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

// Save сохраняет студента (upsert)
func (r *StudentRepository) Save(ctx context.Context, student *model.Student) error {
	doc := *student
	doc.RegisteredAt = timeutil.ToUTC(student.RegisteredAt)

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": student.ID}, &doc, base.Upsert)
	if err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	return nil
}

func (r *StudentRepository) findOne(ctx context.Context, filter bson.M) (*model.Student, error) {
	var student model.Student
	err := r.col.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Студент не найден
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	student.RegisteredAt = timeutil.FromUTC(student.RegisteredAt)
	return &student, nil
}
