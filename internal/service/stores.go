package service

import (
	"context"

	"github.com/damascus-edu/training-center-bot/internal/adapter/googledrive"
	"github.com/damascus-edu/training-center-bot/internal/adapter/metagraph"
	"github.com/damascus-edu/training-center-bot/internal/model"
)

// Интерфейсы хранилищ. Реализации — MongoDB-репозитории,
// в тестах — память.

type CourseStore interface {
	GetByID(ctx context.Context, courseID string) (*model.Course, error)
	GetAll(ctx context.Context) ([]*model.Course, error)
	GetAvailable(ctx context.Context) ([]*model.Course, error)
	Save(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, courseID string) (bool, error)
}

type StudentStore interface {
	GetByID(ctx context.Context, studentID string) (*model.Student, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error)
	GetAll(ctx context.Context) ([]*model.Student, error)
	Save(ctx context.Context, student *model.Student) error
}

type RegistrationStore interface {
	GetByID(ctx context.Context, registrationID string) (*model.Registration, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Registration, error)
	GetByStudent(ctx context.Context, studentID string) ([]*model.Registration, error)
	GetByCourse(ctx context.Context, courseID string) ([]*model.Registration, error)
	GetByStatus(ctx context.Context, status model.RegistrationStatus) ([]*model.Registration, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	Save(ctx context.Context, registration *model.Registration) error
}

type PaymentStore interface {
	GetByRegistration(ctx context.Context, registrationID string) ([]*model.PaymentRecord, error)
	TotalPaid(ctx context.Context, registrationID string) (float64, error)
	Save(ctx context.Context, payment *model.PaymentRecord) error
}

type PreferencesStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.UserPreferences, error)
	Save(ctx context.Context, prefs *model.UserPreferences) error
	SetLanguage(ctx context.Context, telegramID int64, language model.Language) error
	Muted(ctx context.Context) ([]int64, error)
}

type PostStore interface {
	GetPending(ctx context.Context) ([]*model.ScheduledPost, error)
	Save(ctx context.Context, post *model.ScheduledPost) error
}

// PostSource — внешний источник постов (Google Sheets)
type PostSource interface {
	GetScheduledPosts(ctx context.Context) ([]*model.ScheduledPost, error)
	MarkPublished(ctx context.Context, rowIndex int) error
	AddErrorNote(ctx context.Context, rowIndex int, message string) error
}

// SocialPublisher — публикация в соцсети (Meta Graph API)
type SocialPublisher interface {
	PublishToFacebook(ctx context.Context, content, imageURL string) *metagraph.PublishResult
	PublishToInstagram(ctx context.Context, imageURL, caption string) *metagraph.PublishResult
}

// DriveStorage — хранилище материалов (Google Drive)
type DriveStorage interface {
	UploadBytes(ctx context.Context, data []byte, fileName, mimeType, folderID string) (string, error)
	ListFiles(ctx context.Context, folderID string) ([]*googledrive.Material, error)
	CreateFolder(ctx context.Context, name string) (string, error)
}
