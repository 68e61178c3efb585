package service

import (
	"context"
	"fmt"

	"github.com/damascus-edu/training-center-bot/internal/adapter/googledrive"
	"go.uber.org/zap"
)

// MaterialService управляет учебными материалами курсов в Google Drive
type MaterialService struct {
	courses CourseStore
	drive   DriveStorage
	logger  *zap.Logger
}

func NewMaterialService(courses CourseStore, drive DriveStorage, logger *zap.Logger) *MaterialService {
	return &MaterialService{courses: courses, drive: drive, logger: logger}
}

// UploadResult — итог загрузки файла в курсы
type UploadResult struct {
	Links  map[string]string // course_id -> ссылка на файл
	Errors map[string]string // course_id -> текст ошибки
}

// UploadToCourses загружает файл в папки указанных курсов.
// Курсу без папки она создаётся и сохраняется. Сбой по одному курсу
// не мешает загрузке в остальные.
func (s *MaterialService) UploadToCourses(ctx context.Context, courseIDs []string, data []byte, fileName, mimeType string) (*UploadResult, error) {
	if s.drive == nil {
		return nil, fmt.Errorf("google drive is not configured")
	}

	result := &UploadResult{
		Links:  make(map[string]string),
		Errors: make(map[string]string),
	}

	for _, courseID := range courseIDs {
		course, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			result.Errors[courseID] = err.Error()
			continue
		}
		if course == nil {
			result.Errors[courseID] = "course not found"
			continue
		}

		folderID := course.MaterialsFolderID
		if folderID == "" {
			folderID, err = s.drive.CreateFolder(ctx, course.Name)
			if err != nil {
				s.logger.Error("Failed to create materials folder",
					zap.String("course_id", courseID), zap.Error(err))
				result.Errors[courseID] = err.Error()
				continue
			}
			course.MaterialsFolderID = folderID
			if err := s.courses.Save(ctx, course); err != nil {
				s.logger.Error("Failed to save materials folder id",
					zap.String("course_id", courseID), zap.Error(err))
			}
		}

		link, err := s.drive.UploadBytes(ctx, data, fileName, mimeType, folderID)
		if err != nil {
			s.logger.Error("Failed to upload material",
				zap.String("course_id", courseID),
				zap.String("file_name", fileName), zap.Error(err))
			result.Errors[courseID] = err.Error()
			continue
		}

		result.Links[courseID] = link
		s.logger.Info("Material uploaded",
			zap.String("course_id", courseID),
			zap.String("file_name", fileName))
	}

	return result, nil
}

// Materials возвращает список материалов курса
func (s *MaterialService) Materials(ctx context.Context, courseID string) ([]*googledrive.Material, error) {
	if s.drive == nil {
		return nil, fmt.Errorf("google drive is not configured")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("course %s not found", courseID)
	}
	if course.MaterialsFolderID == "" {
		return nil, nil
	}

	return s.drive.ListFiles(ctx, course.MaterialsFolderID)
}
