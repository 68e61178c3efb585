package service

import (
	"context"
	"fmt"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.uber.org/zap"
)

// RegistrationService — заявки на курсы и оплаты.
// Бизнес-отказы (курс полон, дубликат) возвращаются в Error результата,
// ошибками считаются только сбои хранилища.
type RegistrationService struct {
	students      StudentStore
	courses       CourseStore
	registrations RegistrationStore
	payments      PaymentStore
	logger        *zap.Logger
}

func NewRegistrationService(
	students StudentStore,
	courses CourseStore,
	registrations RegistrationStore,
	payments PaymentStore,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		students:      students,
		courses:       courses,
		registrations: registrations,
		payments:      payments,
		logger:        logger,
	}
}

// RegistrationResult — результат заявки
type RegistrationResult struct {
	Success      bool
	Registration *model.Registration
	Student      *model.Student
	Error        string
}

// ApprovalResult — результат одобрения/отклонения
type ApprovalResult struct {
	Success      bool
	Registration *model.Registration
	Error        string
}

// PaymentResult — результат добавления оплаты
type PaymentResult struct {
	Success   bool
	Payment   *model.PaymentRecord
	TotalPaid float64
	Error     string
}

// PendingRegistration — заявка с данными студента и курса
type PendingRegistration struct {
	Registration *model.Registration
	Student      *model.Student
	Course       *model.Course
}

// RosterEntry — строка списка студентов курса
type RosterEntry struct {
	Student      *model.Student
	Registration *model.Registration
	TotalPaid    float64
	Remaining    float64
}

// RequestRegistration обрабатывает заявку студента на курс.
// Студент создаётся при первой заявке; имя и телефон обновляются при повторной.
// Проверка мест — чтение-потом-запись без блокировки: при одновременных заявках
// на последнее место возможна переподписка, дубликат пары студент+курс
// отсекается уникальным индексом.
func (s *RegistrationService) RequestRegistration(ctx context.Context, telegramID int64, fullName, phoneNumber, courseID string) (*RegistrationResult, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return &RegistrationResult{Error: "Course not found"}, nil
	}
	if !course.IsAvailable() {
		return &RegistrationResult{Error: "Course is not available for registration"}, nil
	}

	now := timeutil.Now()

	student, err := s.students.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		student = model.NewStudent(telegramID, fullName, phoneNumber, now)
	} else {
		student.FullName = fullName
		student.PhoneNumber = phoneNumber
	}
	if err := s.students.Save(ctx, student); err != nil {
		return nil, err
	}

	existing, err := s.registrations.GetByStudentAndCourse(ctx, student.ID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &RegistrationResult{Error: "Already registered for this course"}, nil
	}

	count, err := s.registrations.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if count >= int64(course.MaxStudents) {
		return &RegistrationResult{Error: "Course is full"}, nil
	}

	registration := model.NewRegistration(student.ID, courseID, now)
	if err := s.registrations.Save(ctx, registration); err != nil {
		return nil, err
	}

	s.logger.Info("Registration requested",
		zap.String("registration_id", registration.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("course_id", courseID))

	return &RegistrationResult{
		Success:      true,
		Registration: registration,
		Student:      student,
	}, nil
}

// Student возвращает студента по telegram_id, nil если не зарегистрирован
func (s *RegistrationService) Student(ctx context.Context, telegramID int64) (*model.Student, error) {
	return s.students.GetByTelegramID(ctx, telegramID)
}

// StudentByID возвращает студента по внутреннему идентификатору
func (s *RegistrationService) StudentByID(ctx context.Context, studentID string) (*model.Student, error) {
	return s.students.GetByID(ctx, studentID)
}

// Registration возвращает заявку по идентификатору, nil если не найдена
func (s *RegistrationService) Registration(ctx context.Context, registrationID string) (*model.Registration, error) {
	return s.registrations.GetByID(ctx, registrationID)
}

// ProfileParams — анкета студента. Пустые поля означают пропущенные шаги.
type ProfileParams struct {
	Gender         string
	Age            int
	Residence      string
	EducationLevel string
	Specialization string
}

// CompleteProfile сохраняет анкету студента и помечает профиль заполненным.
// Возвращает nil если студент не найден.
func (s *RegistrationService) CompleteProfile(ctx context.Context, telegramID int64, params ProfileParams) (*model.Student, error) {
	student, err := s.students.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}

	student.Gender = params.Gender
	student.Age = params.Age
	student.Residence = params.Residence
	student.EducationLevel = params.EducationLevel
	student.Specialization = params.Specialization
	student.ProfileCompleted = true

	if err := s.students.Save(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("Student profile completed",
		zap.Int64("telegram_id", telegramID),
		zap.String("student_id", student.ID))

	return student, nil
}

// Approve одобряет pending-заявку
func (s *RegistrationService) Approve(ctx context.Context, registrationID string, adminTelegramID int64, notes string) (*ApprovalResult, error) {
	return s.resolve(ctx, registrationID, adminTelegramID, notes, model.RegistrationStatusApproved)
}

// Reject отклоняет pending-заявку
func (s *RegistrationService) Reject(ctx context.Context, registrationID string, adminTelegramID int64, reason string) (*ApprovalResult, error) {
	if reason == "" {
		reason = "Rejected by admin"
	}
	return s.resolve(ctx, registrationID, adminTelegramID, reason, model.RegistrationStatusRejected)
}

func (s *RegistrationService) resolve(ctx context.Context, registrationID string, adminTelegramID int64, notes string, status model.RegistrationStatus) (*ApprovalResult, error) {
	registration, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return &ApprovalResult{Error: "Registration not found"}, nil
	}
	if registration.Status != model.RegistrationStatusPending {
		return &ApprovalResult{
			Error: fmt.Sprintf("Registration is not pending (status: %s)", registration.Status),
		}, nil
	}

	now := timeutil.Now()
	registration.Status = status
	registration.ApprovedAt = &now
	registration.ApprovedBy = adminTelegramID
	if notes != "" {
		registration.Notes = notes
	}

	if err := s.registrations.Save(ctx, registration); err != nil {
		return nil, err
	}

	s.logger.Info("Registration resolved",
		zap.String("registration_id", registrationID),
		zap.String("status", string(status)),
		zap.Int64("admin", adminTelegramID))

	return &ApprovalResult{Success: true, Registration: registration}, nil
}

// Cancel отменяет заявку (статус cancelled, место освобождается)
func (s *RegistrationService) Cancel(ctx context.Context, registrationID string) (*ApprovalResult, error) {
	registration, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return &ApprovalResult{Error: "Registration not found"}, nil
	}
	if registration.Status == model.RegistrationStatusCancelled {
		return &ApprovalResult{Error: "Registration is already cancelled"}, nil
	}

	registration.Status = model.RegistrationStatusCancelled
	if err := s.registrations.Save(ctx, registration); err != nil {
		return nil, err
	}
	return &ApprovalResult{Success: true, Registration: registration}, nil
}

// PendingRegistrations возвращает все pending-заявки с данными студента и курса
func (s *RegistrationService) PendingRegistrations(ctx context.Context) ([]*PendingRegistration, error) {
	registrations, err := s.registrations.GetByStatus(ctx, model.RegistrationStatusPending)
	if err != nil {
		return nil, err
	}

	result := make([]*PendingRegistration, 0, len(registrations))
	for _, reg := range registrations {
		student, err := s.students.GetByID(ctx, reg.StudentID)
		if err != nil {
			return nil, err
		}
		course, err := s.courses.GetByID(ctx, reg.CourseID)
		if err != nil {
			return nil, err
		}
		result = append(result, &PendingRegistration{
			Registration: reg,
			Student:      student,
			Course:       course,
		})
	}
	return result, nil
}

// StudentRegistrations возвращает заявки студента с курсами
func (s *RegistrationService) StudentRegistrations(ctx context.Context, telegramID int64) ([]*PendingRegistration, error) {
	student, err := s.students.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}

	registrations, err := s.registrations.GetByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	result := make([]*PendingRegistration, 0, len(registrations))
	for _, reg := range registrations {
		course, err := s.courses.GetByID(ctx, reg.CourseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			continue
		}
		result = append(result, &PendingRegistration{
			Registration: reg,
			Student:      student,
			Course:       course,
		})
	}
	return result, nil
}

// AddPayment добавляет оплату к одобренной заявке и пересчитывает
// статус оплаты по сумме всех записей
func (s *RegistrationService) AddPayment(ctx context.Context, registrationID string, amount float64, method model.PaymentMethod, adminTelegramID int64, notes string) (*PaymentResult, error) {
	registration, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return &PaymentResult{Error: "Registration not found"}, nil
	}
	if registration.Status != model.RegistrationStatusApproved {
		return &PaymentResult{Error: "Can only add payments to approved registrations"}, nil
	}

	course, err := s.courses.GetByID(ctx, registration.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return &PaymentResult{Error: "Course not found"}, nil
	}

	payment := model.NewPaymentRecord(registrationID, amount, method, adminTelegramID, timeutil.Now(), notes)
	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	totalPaid, err := s.payments.TotalPaid(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	registration.PaymentStatus = model.DerivePaymentStatus(totalPaid, course.Price)
	if err := s.registrations.Save(ctx, registration); err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("registration_id", registrationID),
		zap.Float64("amount", amount),
		zap.Float64("total_paid", totalPaid),
		zap.String("payment_status", string(registration.PaymentStatus)))

	return &PaymentResult{
		Success:   true,
		Payment:   payment,
		TotalPaid: totalPaid,
	}, nil
}

// PaymentHistory возвращает все оплаты по заявке
func (s *RegistrationService) PaymentHistory(ctx context.Context, registrationID string) ([]*model.PaymentRecord, error) {
	return s.payments.GetByRegistration(ctx, registrationID)
}

// CourseRoster возвращает студентов курса с суммами оплат
func (s *RegistrationService) CourseRoster(ctx context.Context, courseID string) ([]*RosterEntry, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	registrations, err := s.registrations.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	roster := make([]*RosterEntry, 0, len(registrations))
	for _, reg := range registrations {
		student, err := s.students.GetByID(ctx, reg.StudentID)
		if err != nil {
			return nil, err
		}
		totalPaid, err := s.payments.TotalPaid(ctx, reg.ID)
		if err != nil {
			return nil, err
		}
		remaining := course.Price - totalPaid
		if remaining < 0 {
			remaining = 0
		}
		roster = append(roster, &RosterEntry{
			Student:      student,
			Registration: reg,
			TotalPaid:    totalPaid,
			Remaining:    remaining,
		})
	}
	return roster, nil
}
