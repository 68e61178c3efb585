package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/damascus-edu/training-center-bot/internal/model"
)

func validCourseParams() CreateCourseParams {
	now := time.Now()
	return CreateCourseParams{
		Name:        "Английский B1",
		Description: "Разговорный курс",
		Instructor:  "Ахмад",
		StartDate:   now.AddDate(0, 1, 0),
		EndDate:     now.AddDate(0, 2, 0),
		Price:       100000,
		MaxStudents: 15,
	}
}

func TestCreateCourse(t *testing.T) {
	courses := newFakeCourseStore()
	drive := newFakeDrive()
	svc := NewCourseService(courses, drive, zap.NewNop())

	result, err := svc.CreateCourse(context.Background(), validCourseParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("create failed: %q", result.Error)
	}
	if result.Course.Status != model.CourseStatusPublished {
		t.Fatalf("status = %s, want published", result.Course.Status)
	}
	if result.Course.MaterialsFolderID == "" {
		t.Fatal("materials folder must be created")
	}
	if len(drive.folders) != 1 {
		t.Fatalf("drive folders = %v", drive.folders)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), newFakeDrive(), zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateCourseParams)
	}{
		{"short name", func(p *CreateCourseParams) { p.Name = "А" }},
		{"negative price", func(p *CreateCourseParams) { p.Price = -1 }},
		{"zero capacity", func(p *CreateCourseParams) { p.MaxStudents = 0 }},
		{"end before start", func(p *CreateCourseParams) { p.EndDate = p.StartDate.AddDate(0, 0, -1) }},
	}
	for _, c := range cases {
		params := validCourseParams()
		c.mutate(&params)
		result, err := svc.CreateCourse(ctx, params)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if result.Success || result.Error == "" {
			t.Fatalf("%s: expected validation failure, got %+v", c.name, result)
		}
	}
}

func TestCreateCourseWithoutDrive(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), nil, zap.NewNop())

	result, err := svc.CreateCourse(context.Background(), validCourseParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("create without drive failed: %q", result.Error)
	}
	if result.Course.MaterialsFolderID != "" {
		t.Fatal("folder must not be set without drive")
	}
}

func TestUpdateCourse(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	before := course.UpdatedAt
	svc := NewCourseService(newFakeCourseStore(course), newFakeDrive(), zap.NewNop())

	course.Description = "Обновлённое описание"
	if err := svc.UpdateCourse(context.Background(), course); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !course.UpdatedAt.After(before) {
		t.Fatal("updated_at must move forward")
	}
}

func TestUpdateStatus(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	svc := NewCourseService(newFakeCourseStore(course), newFakeDrive(), zap.NewNop())

	updated, err := svc.UpdateStatus(context.Background(), course.ID, model.CourseStatusOngoing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Status != model.CourseStatusOngoing {
		t.Fatalf("updated = %+v", updated)
	}

	missing, err := svc.UpdateStatus(context.Background(), "missing", model.CourseStatusOngoing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatal("unknown course must return nil")
	}
}

func TestDeleteCourse(t *testing.T) {
	draft := model.NewCourse("Черновик", "", "", time.Now().AddDate(0, 1, 0), time.Now().AddDate(0, 2, 0), 50000, 10, time.Now())
	published := model.NewCourse("Идущий", "", "", time.Now().AddDate(0, 1, 0), time.Now().AddDate(0, 2, 0), 50000, 10, time.Now())
	published.Status = model.CourseStatusPublished
	courses := newFakeCourseStore(draft, published)
	svc := NewCourseService(courses, nil, zap.NewNop())

	result, err := svc.DeleteCourse(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("delete failed: %q", result.Error)
	}
	if got, _ := courses.GetByID(context.Background(), draft.ID); got != nil {
		t.Fatal("draft course still present after delete")
	}

	result, err = svc.DeleteCourse(context.Background(), published.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("published course must not be deletable")
	}
	if got, _ := courses.GetByID(context.Background(), published.ID); got == nil {
		t.Fatal("published course disappeared")
	}

	result, err = svc.DeleteCourse(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Error != "Course not found" {
		t.Fatalf("result = %+v", result)
	}
}
