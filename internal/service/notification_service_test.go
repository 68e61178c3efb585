package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
)

func newTestNotificationService(students *fakeStudentStore, regs *fakeRegistrationStore, payments *fakePaymentStore, courses *fakeCourseStore, prefs *fakePreferencesStore) *NotificationService {
	return NewNotificationService(students, regs, payments, courses, prefs, zap.NewNop())
}

func TestBroadcastSkipsMuted(t *testing.T) {
	s1 := model.NewStudent(1, "Первый", "0912345678", time.Now())
	s2 := model.NewStudent(2, "Второй", "0922345678", time.Now())
	prefs := newFakePreferencesStore()
	muted := model.NewUserPreferences(2)
	muted.NotificationsEnabled = false
	prefs.prefs[2] = muted

	svc := newTestNotificationService(newFakeStudentStore(s1, s2), newFakeRegistrationStore(), &fakePaymentStore{}, newFakeCourseStore(), prefs)

	var delivered []int64
	result, err := svc.Broadcast(context.Background(), "Привет!", func(_ context.Context, telegramID int64, _ string) error {
		delivered = append(delivered, telegramID)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sent != 1 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
	if len(delivered) != 1 || delivered[0] != 1 {
		t.Fatalf("delivered to %v", delivered)
	}
	if prefs.mutedCalls != 1 {
		t.Fatalf("muted users loaded %d times, want one query", prefs.mutedCalls)
	}
}

func TestBroadcastCountsFailures(t *testing.T) {
	s1 := model.NewStudent(1, "Первый", "0912345678", time.Now())
	s2 := model.NewStudent(2, "Второй", "0922345678", time.Now())
	svc := newTestNotificationService(newFakeStudentStore(s1, s2), newFakeRegistrationStore(), &fakePaymentStore{}, newFakeCourseStore(), newFakePreferencesStore())

	result, err := svc.Broadcast(context.Background(), "Привет!", func(_ context.Context, telegramID int64, _ string) error {
		if telegramID == 2 {
			return errors.New("blocked by user")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sent != 1 || result.Failed != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestLanguageDefaultsToArabic(t *testing.T) {
	svc := newTestNotificationService(newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{}, newFakeCourseStore(), newFakePreferencesStore())

	if lang := svc.Language(context.Background(), 99); lang != model.LanguageArabic {
		t.Fatalf("default language = %s", lang)
	}

	if err := svc.SetLanguage(context.Background(), 99, model.LanguageEnglish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang := svc.Language(context.Background(), 99); lang != model.LanguageEnglish {
		t.Fatalf("language after set = %s", lang)
	}
}

func TestSetNotificationsEnabled(t *testing.T) {
	svc := newTestNotificationService(newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{}, newFakeCourseStore(), newFakePreferencesStore())
	ctx := context.Background()

	if !svc.NotificationsEnabled(ctx, 7) {
		t.Fatal("notifications must default to enabled")
	}
	if err := svc.SetNotificationsEnabled(ctx, 7, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.NotificationsEnabled(ctx, 7) {
		t.Fatal("notifications must be disabled after toggle")
	}
}

func reminderCourse(startIn time.Duration) *model.Course {
	now := timeutil.Now()
	c := model.NewCourse("Английский B1", "", "Ахмад", now.Add(startIn), now.Add(startIn+30*24*time.Hour), 100000, 20, now)
	c.Status = model.CourseStatusPublished
	return c
}

func TestCoursesToRemindWindow(t *testing.T) {
	window := 5 * time.Minute
	inWindow := reminderCourse(24*time.Hour + time.Minute)
	tooSoon := reminderCourse(23 * time.Hour)
	tooFar := reminderCourse(24*time.Hour + 10*time.Minute)

	student := model.NewStudent(1, "Лина", "0912345678", time.Now())
	var regs []*model.Registration
	for _, c := range []*model.Course{inWindow, tooSoon, tooFar} {
		r := model.NewRegistration(student.ID, c.ID, time.Now())
		r.Status = model.RegistrationStatusApproved
		r.PaymentStatus = model.PaymentStatusPaid
		regs = append(regs, r)
	}

	svc := newTestNotificationService(
		newFakeStudentStore(student),
		newFakeRegistrationStore(regs...),
		&fakePaymentStore{},
		newFakeCourseStore(inWindow, tooSoon, tooFar),
		newFakePreferencesStore(),
	)

	reminders, err := svc.CoursesToRemind(context.Background(), window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("reminders = %d, want 1", len(reminders))
	}
	if reminders[0].Course.ID != inWindow.ID {
		t.Fatalf("wrong course reminded: %s", reminders[0].Course.Name)
	}
	if !reminders[0].Paid {
		t.Fatal("paid registration must produce paid reminder")
	}
}

func TestCoursesToRemindComputesRemaining(t *testing.T) {
	course := reminderCourse(24*time.Hour + time.Minute)
	student := model.NewStudent(1, "Лина", "0912345678", time.Now())
	reg := model.NewRegistration(student.ID, course.ID, time.Now())
	reg.Status = model.RegistrationStatusApproved
	reg.PaymentStatus = model.PaymentStatusPartial

	payments := &fakePaymentStore{}
	payments.payments = append(payments.payments, model.NewPaymentRecord(reg.ID, 30000, model.PaymentMethodCash, 42, time.Now(), ""))

	svc := newTestNotificationService(
		newFakeStudentStore(student),
		newFakeRegistrationStore(reg),
		payments,
		newFakeCourseStore(course),
		newFakePreferencesStore(),
	)

	reminders, err := svc.CoursesToRemind(context.Background(), 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("reminders = %d", len(reminders))
	}
	if reminders[0].Paid {
		t.Fatal("partial payment must produce payment reminder")
	}
	if reminders[0].Remaining != 70000 {
		t.Fatalf("remaining = %v", reminders[0].Remaining)
	}
}

func TestCoursesToRemindSkipsPendingAndMuted(t *testing.T) {
	course := reminderCourse(24*time.Hour + time.Minute)
	pendingStudent := model.NewStudent(1, "Ожидающий", "0912345678", time.Now())
	mutedStudent := model.NewStudent(2, "Отключивший", "0922345678", time.Now())

	pendingReg := model.NewRegistration(pendingStudent.ID, course.ID, time.Now())
	mutedReg := model.NewRegistration(mutedStudent.ID, course.ID, time.Now())
	mutedReg.Status = model.RegistrationStatusApproved

	prefs := newFakePreferencesStore()
	muted := model.NewUserPreferences(2)
	muted.NotificationsEnabled = false
	prefs.prefs[2] = muted

	svc := newTestNotificationService(
		newFakeStudentStore(pendingStudent, mutedStudent),
		newFakeRegistrationStore(pendingReg, mutedReg),
		&fakePaymentStore{},
		newFakeCourseStore(course),
		prefs,
	)

	reminders, err := svc.CoursesToRemind(context.Background(), 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reminders) != 0 {
		t.Fatalf("reminders = %d, want 0", len(reminders))
	}
}

func TestRecipients(t *testing.T) {
	course := reminderCourse(72 * time.Hour)
	approved := model.NewStudent(1, "Одобренный", "0912345678", time.Now())
	pending := model.NewStudent(2, "Ожидающий", "0922345678", time.Now())

	approvedReg := model.NewRegistration(approved.ID, course.ID, time.Now())
	approvedReg.Status = model.RegistrationStatusApproved
	pendingReg := model.NewRegistration(pending.ID, course.ID, time.Now())

	svc := newTestNotificationService(
		newFakeStudentStore(approved, pending),
		newFakeRegistrationStore(approvedReg, pendingReg),
		&fakePaymentStore{},
		newFakeCourseStore(course),
		newFakePreferencesStore(),
	)

	ids, err := svc.Recipients(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("recipients = %v", ids)
	}
}
