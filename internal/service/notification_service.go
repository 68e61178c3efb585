package service

import (
	"context"
	"fmt"
	"time"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.uber.org/zap"
)

// SendFunc отправляет текстовое сообщение пользователю Telegram
type SendFunc func(ctx context.Context, telegramID int64, text string) error

// NotificationService рассылает уведомления студентам:
// массовые рассылки от администратора и напоминания о начале курса.
type NotificationService struct {
	students      StudentStore
	registrations RegistrationStore
	payments      PaymentStore
	courses       CourseStore
	prefs         PreferencesStore
	logger        *zap.Logger
}

func NewNotificationService(
	students StudentStore,
	registrations RegistrationStore,
	payments PaymentStore,
	courses CourseStore,
	prefs PreferencesStore,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		students:      students,
		registrations: registrations,
		payments:      payments,
		courses:       courses,
		prefs:         prefs,
		logger:        logger,
	}
}

// BroadcastResult — итог массовой рассылки
type BroadcastResult struct {
	Sent   int
	Failed int
}

// Broadcast отправляет сообщение всем студентам с включёнными уведомлениями.
// Отключившие уведомления забираются одним запросом; отсутствие настроек
// трактуется как уведомления включены.
// Сбой отправки одному получателю не прерывает рассылку.
func (s *NotificationService) Broadcast(ctx context.Context, text string, send SendFunc) (*BroadcastResult, error) {
	students, err := s.students.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}

	muted, err := s.prefs.Muted(ctx)
	if err != nil {
		s.logger.Warn("Failed to load muted users, broadcasting to everyone", zap.Error(err))
	}
	mutedSet := make(map[int64]struct{}, len(muted))
	for _, id := range muted {
		mutedSet[id] = struct{}{}
	}

	result := &BroadcastResult{}
	for _, student := range students {
		if _, ok := mutedSet[student.TelegramID]; ok {
			continue
		}

		if err := send(ctx, student.TelegramID, text); err != nil {
			s.logger.Warn("Broadcast delivery failed",
				zap.Int64("telegram_id", student.TelegramID), zap.Error(err))
			result.Failed++
			continue
		}
		result.Sent++
	}

	s.logger.Info("Broadcast finished",
		zap.Int("sent", result.Sent), zap.Int("failed", result.Failed))
	return result, nil
}

// Language возвращает язык пользователя, по умолчанию арабский
func (s *NotificationService) Language(ctx context.Context, telegramID int64) model.Language {
	prefs, err := s.prefs.GetByTelegramID(ctx, telegramID)
	if err != nil || prefs == nil {
		return model.LanguageArabic
	}
	return prefs.Language
}

// SetLanguage сохраняет язык пользователя
func (s *NotificationService) SetLanguage(ctx context.Context, telegramID int64, language model.Language) error {
	return s.prefs.SetLanguage(ctx, telegramID, language)
}

// NotificationsEnabled возвращает включены ли уведомления пользователя
// (по умолчанию включены)
func (s *NotificationService) NotificationsEnabled(ctx context.Context, telegramID int64) bool {
	enabled, err := s.notificationsEnabled(ctx, telegramID)
	if err != nil {
		return true
	}
	return enabled
}

// SetNotificationsEnabled включает или выключает уведомления пользователя
func (s *NotificationService) SetNotificationsEnabled(ctx context.Context, telegramID int64, enabled bool) error {
	prefs, err := s.prefs.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	if prefs == nil {
		prefs = model.NewUserPreferences(telegramID)
	}
	prefs.NotificationsEnabled = enabled
	return s.prefs.Save(ctx, prefs)
}

// Reminder — напоминание конкретному студенту о скором начале курса
type Reminder struct {
	TelegramID  int64
	Language    model.Language
	Course      *model.Course
	Paid        bool
	Remaining   float64 // Остаток к оплате, имеет смысл только при Paid == false
	StudentName string
}

// CoursesToRemind собирает напоминания по курсам, начинающимся через сутки.
// Окно [24ч, 24ч+window) привязано к интервалу планировщика, чтобы каждый
// курс попал ровно в один тик. Оплатившим уходит обычное напоминание,
// остальным — напоминание с остатком к оплате.
func (s *NotificationService) CoursesToRemind(ctx context.Context, window time.Duration) ([]*Reminder, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}

	now := timeutil.Now()
	var reminders []*Reminder
	for _, course := range courses {
		if !course.IsAvailable() {
			continue
		}
		until := course.StartDate.Sub(now)
		if until < 24*time.Hour || until >= 24*time.Hour+window {
			continue
		}

		regs, err := s.registrations.GetByCourse(ctx, course.ID)
		if err != nil {
			s.logger.Error("Failed to load registrations for reminder",
				zap.String("course_id", course.ID), zap.Error(err))
			continue
		}

		for _, reg := range regs {
			if reg.Status != model.RegistrationStatusApproved {
				continue
			}
			student, err := s.students.GetByID(ctx, reg.StudentID)
			if err != nil || student == nil {
				continue
			}
			enabled, err := s.notificationsEnabled(ctx, student.TelegramID)
			if err != nil {
				enabled = true
			}
			if !enabled {
				continue
			}

			reminder := &Reminder{
				TelegramID:  student.TelegramID,
				Language:    s.Language(ctx, student.TelegramID),
				Course:      course,
				Paid:        reg.PaymentStatus == model.PaymentStatusPaid,
				StudentName: student.FullName,
			}
			if !reminder.Paid {
				total, err := s.payments.TotalPaid(ctx, reg.ID)
				if err != nil {
					s.logger.Warn("Failed to compute total paid for reminder",
						zap.String("registration_id", reg.ID), zap.Error(err))
				}
				reminder.Remaining = course.Price - total
				if reminder.Remaining < 0 {
					reminder.Remaining = 0
				}
			}
			reminders = append(reminders, reminder)
		}
	}

	return reminders, nil
}

// Recipients возвращает telegram_id студентов курса с одобренной заявкой
// и включёнными уведомлениями. Используется для точечных рассылок по курсу.
func (s *NotificationService) Recipients(ctx context.Context, courseID string) ([]int64, error) {
	regs, err := s.registrations.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}

	var ids []int64
	for _, reg := range regs {
		if reg.Status != model.RegistrationStatusApproved {
			continue
		}
		student, err := s.students.GetByID(ctx, reg.StudentID)
		if err != nil || student == nil {
			continue
		}
		enabled, err := s.notificationsEnabled(ctx, student.TelegramID)
		if err != nil {
			enabled = true
		}
		if enabled {
			ids = append(ids, student.TelegramID)
		}
	}
	return ids, nil
}

func (s *NotificationService) notificationsEnabled(ctx context.Context, telegramID int64) (bool, error) {
	prefs, err := s.prefs.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return true, err
	}
	if prefs == nil {
		return true, nil
	}
	return prefs.NotificationsEnabled, nil
}
