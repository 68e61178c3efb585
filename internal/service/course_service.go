package service

import (
	"context"
	"strings"
	"time"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.uber.org/zap"
)

type CourseService struct {
	courses CourseStore
	drive   DriveStorage
	logger  *zap.Logger
}

func NewCourseService(courses CourseStore, drive DriveStorage, logger *zap.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		drive:   drive,
		logger:  logger,
	}
}

// CreateCourseParams — данные для создания курса
type CreateCourseParams struct {
	Name           string
	Description    string
	Instructor     string
	StartDate      time.Time
	EndDate        time.Time
	Price          float64
	MaxStudents    int
	TargetAudience string
	DurationHours  int
}

// CreateCourseResult — результат создания курса
type CreateCourseResult struct {
	Success bool
	Course  *model.Course
	Error   string
}

// Courses возвращает курсы: все или только открытые для записи
func (s *CourseService) Courses(ctx context.Context, availableOnly bool) ([]*model.Course, error) {
	if availableOnly {
		return s.courses.GetAvailable(ctx)
	}
	return s.courses.GetAll(ctx)
}

// Course возвращает курс по ID (nil если не найден)
func (s *CourseService) Course(ctx context.Context, courseID string) (*model.Course, error) {
	return s.courses.GetByID(ctx, courseID)
}

// CreateCourse создаёт курс и папку для его материалов в Google Drive.
// Курс сразу публикуется. Если папку создать не удалось,
// курс всё равно создаётся — папка появится при первой загрузке материалов.
func (s *CourseService) CreateCourse(ctx context.Context, params CreateCourseParams) (*CreateCourseResult, error) {
	name := strings.TrimSpace(params.Name)
	if len([]rune(name)) < 2 {
		return &CreateCourseResult{Error: "Course name too short"}, nil
	}
	if params.Price < 0 {
		return &CreateCourseResult{Error: "Price cannot be negative"}, nil
	}
	if params.MaxStudents < 1 {
		return &CreateCourseResult{Error: "Max students must be at least 1"}, nil
	}
	if !params.StartDate.Before(params.EndDate) {
		return &CreateCourseResult{Error: "Start date must be before end date"}, nil
	}

	now := timeutil.Now()
	course := model.NewCourse(
		name,
		strings.TrimSpace(params.Description),
		strings.TrimSpace(params.Instructor),
		params.StartDate,
		params.EndDate,
		params.Price,
		params.MaxStudents,
		now,
	)
	course.TargetAudience = strings.TrimSpace(params.TargetAudience)
	course.DurationHours = params.DurationHours
	course.Status = model.CourseStatusPublished

	if s.drive != nil {
		folderID, err := s.drive.CreateFolder(ctx, name)
		if err != nil {
			s.logger.Error("Failed to create Drive folder for course",
				zap.String("course", name), zap.Error(err))
		} else {
			course.MaterialsFolderID = folderID
		}
	}

	if err := s.courses.Save(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("Created course",
		zap.String("course_id", course.ID),
		zap.String("name", course.Name))

	return &CreateCourseResult{Success: true, Course: course}, nil
}

// UpdateStatus меняет статус курса
func (s *CourseService) UpdateStatus(ctx context.Context, courseID string, status model.CourseStatus) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	course.Status = status
	course.UpdatedAt = timeutil.Now()

	if err := s.courses.Save(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("Course status updated",
		zap.String("course_id", courseID),
		zap.String("status", string(status)))

	return course, nil
}

// DeleteCourseResult — результат удаления курса
type DeleteCourseResult struct {
	Success bool
	Error   string
}

// DeleteCourse удаляет курс. Разрешено только для черновиков и отменённых
// курсов: у опубликованных и идущих есть заявки и история оплат.
func (s *CourseService) DeleteCourse(ctx context.Context, courseID string) (*DeleteCourseResult, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return &DeleteCourseResult{Error: "Course not found"}, nil
	}
	if course.Status != model.CourseStatusDraft && course.Status != model.CourseStatusCancelled {
		return &DeleteCourseResult{Error: "Only draft or cancelled courses can be deleted"}, nil
	}

	if _, err := s.courses.Delete(ctx, courseID); err != nil {
		return nil, err
	}

	s.logger.Info("Course deleted",
		zap.String("course_id", courseID),
		zap.String("name", course.Name))

	return &DeleteCourseResult{Success: true}, nil
}

// UpdateCourse сохраняет отредактированный курс, обновляя updated_at
func (s *CourseService) UpdateCourse(ctx context.Context, course *model.Course) error {
	course.UpdatedAt = timeutil.Now()
	return s.courses.Save(ctx, course)
}
