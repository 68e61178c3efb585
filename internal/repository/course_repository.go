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

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection("courses")}
}

// GetByID получает курс по ID
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*model.Course, error) {
	var course model.Course
	err := r.col.FindOne(ctx, bson.M{"_id": courseID}).Decode(&course)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Курс не найден
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}
	normalizeCourse(&course)
	return &course, nil
}

// GetAll получает все курсы
func (r *CourseRepository) GetAll(ctx context.Context) ([]*model.Course, error) {
	return r.find(ctx, bson.M{})
}

// GetAvailable получает курсы, открытые для записи (published или ongoing)
func (r *CourseRepository) GetAvailable(ctx context.Context) ([]*model.Course, error) {
	return r.find(ctx, bson.M{
		"status": bson.M{"$in": bson.A{model.CourseStatusPublished, model.CourseStatusOngoing}},
	})
}

// Save сохраняет курс (upsert)
func (r *CourseRepository) Save(ctx context.Context, course *model.Course) error {
	doc := *course
	doc.StartDate = timeutil.ToUTC(course.StartDate)
	doc.EndDate = timeutil.ToUTC(course.EndDate)
	doc.CreatedAt = timeutil.ToUTC(course.CreatedAt)
	doc.UpdatedAt = timeutil.ToUTC(course.UpdatedAt)

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": course.ID}, &doc, base.Upsert)
	if err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	return nil
}

// Delete удаляет курс
func (r *CourseRepository) Delete(ctx context.Context, courseID string) (bool, error) {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": courseID})
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *CourseRepository) find(ctx context.Context, filter bson.M) ([]*model.Course, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []*model.Course
	for cursor.Next(ctx) {
		var course model.Course
		if err := cursor.Decode(&course); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		normalizeCourse(&course)
		courses = append(courses, &course)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}

// normalizeCourse переводит даты из UTC (MongoDB) в часовой пояс центра
func normalizeCourse(c *model.Course) {
	c.StartDate = timeutil.FromUTC(c.StartDate)
	c.EndDate = timeutil.FromUTC(c.EndDate)
	c.CreatedAt = timeutil.FromUTC(c.CreatedAt)
	c.UpdatedAt = timeutil.FromUTC(c.UpdatedAt)
}
