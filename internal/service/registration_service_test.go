package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/damascus-edu/training-center-bot/internal/model"
)

func testCourse(status model.CourseStatus, maxStudents int) *model.Course {
	now := time.Now()
	c := model.NewCourse("Английский B1", "", "Ахмад", now.AddDate(0, 1, 0), now.AddDate(0, 2, 0), 100000, maxStudents, now)
	c.Status = status
	return c
}

func newTestRegistrationService(courses *fakeCourseStore, students *fakeStudentStore, regs *fakeRegistrationStore, payments *fakePaymentStore) *RegistrationService {
	return NewRegistrationService(students, courses, regs, payments, zap.NewNop())
}

func TestRequestRegistrationCreatesStudent(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{})

	result, err := svc.RequestRegistration(context.Background(), 555, "Лина Халед", "0912345678", course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Student == nil || result.Student.TelegramID != 555 {
		t.Fatalf("student not created: %+v", result.Student)
	}
	if result.Registration.Status != model.RegistrationStatusPending {
		t.Fatalf("registration status = %s", result.Registration.Status)
	}
	if result.Registration.PaymentStatus != model.PaymentStatusUnpaid {
		t.Fatalf("payment status = %s", result.Registration.PaymentStatus)
	}
}

func TestRequestRegistrationDuplicate(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{})

	ctx := context.Background()
	if result, _ := svc.RequestRegistration(ctx, 555, "Лина Халед", "0912345678", course.ID); !result.Success {
		t.Fatalf("first registration failed: %q", result.Error)
	}
	result, err := svc.RequestRegistration(ctx, 555, "Лина Халед", "0912345678", course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Error != "Already registered for this course" {
		t.Fatalf("duplicate must be rejected, got %+v", result)
	}
}

func TestRequestRegistrationCourseFull(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 1)
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{})

	ctx := context.Background()
	if result, _ := svc.RequestRegistration(ctx, 1, "Первый", "0912345678", course.ID); !result.Success {
		t.Fatalf("first registration failed: %q", result.Error)
	}
	result, err := svc.RequestRegistration(ctx, 2, "Второй", "0922345678", course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Error != "Course is full" {
		t.Fatalf("full course must reject, got %+v", result)
	}
}

func TestRequestRegistrationUnavailableCourse(t *testing.T) {
	cases := []model.CourseStatus{model.CourseStatusDraft, model.CourseStatusCompleted, model.CourseStatusCancelled}
	for _, status := range cases {
		course := testCourse(status, 10)
		svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{})

		result, err := svc.RequestRegistration(context.Background(), 555, "Лина", "0912345678", course.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success || result.Error != "Course is not available for registration" {
			t.Fatalf("status %s must reject, got %+v", status, result)
		}
	}
}

func TestRequestRegistrationUnknownCourse(t *testing.T) {
	svc := newTestRegistrationService(newFakeCourseStore(), newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{})
	result, err := svc.RequestRegistration(context.Background(), 555, "Лина", "0912345678", "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Error != "Course not found" {
		t.Fatalf("unknown course must reject, got %+v", result)
	}
}

func TestApproveAndReject(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	student := model.NewStudent(555, "Лина", "0912345678", time.Now())
	reg := model.NewRegistration(student.ID, course.ID, time.Now())
	regs := newFakeRegistrationStore(reg)
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(student), regs, &fakePaymentStore{})

	ctx := context.Background()
	result, err := svc.Approve(ctx, reg.ID, 42, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("approve failed: %q", result.Error)
	}
	if result.Registration.Status != model.RegistrationStatusApproved {
		t.Fatalf("status = %s", result.Registration.Status)
	}
	if result.Registration.ApprovedBy != 42 || result.Registration.ApprovedAt == nil {
		t.Fatalf("approval metadata missing: %+v", result.Registration)
	}

	// Повторное решение по той же заявке отклоняется
	result, err = svc.Reject(ctx, reg.ID, 42, "changed my mind")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("resolved registration must not be resolvable again")
	}
}

func TestCancelRegistration(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	student := model.NewStudent(555, "Лина", "0912345678", time.Now())
	reg := model.NewRegistration(student.ID, course.ID, time.Now())
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(student), newFakeRegistrationStore(reg), &fakePaymentStore{})

	ctx := context.Background()
	result, err := svc.Cancel(ctx, reg.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.Registration.Status != model.RegistrationStatusCancelled {
		t.Fatalf("cancel result = %+v", result)
	}

	// Повторная отмена отклоняется
	result, err = svc.Cancel(ctx, reg.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("cancelled registration must not cancel again")
	}
}

func TestRejectDefaultReason(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	student := model.NewStudent(555, "Лина", "0912345678", time.Now())
	reg := model.NewRegistration(student.ID, course.ID, time.Now())
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(student), newFakeRegistrationStore(reg), &fakePaymentStore{})

	result, err := svc.Reject(context.Background(), reg.ID, 42, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("reject failed: %q", result.Error)
	}
	if result.Registration.Notes != "Rejected by admin" {
		t.Fatalf("notes = %q", result.Registration.Notes)
	}
}

func TestAddPayment(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	student := model.NewStudent(555, "Лина", "0912345678", time.Now())
	reg := model.NewRegistration(student.ID, course.ID, time.Now())
	reg.Status = model.RegistrationStatusApproved
	regs := newFakeRegistrationStore(reg)
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(student), regs, &fakePaymentStore{})

	ctx := context.Background()
	result, err := svc.AddPayment(ctx, reg.ID, 40000, model.PaymentMethodCash, 42, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.TotalPaid != 40000 {
		t.Fatalf("first payment: %+v", result)
	}
	if reg.PaymentStatus != model.PaymentStatusPartial {
		t.Fatalf("payment status after partial = %s", reg.PaymentStatus)
	}

	result, err = svc.AddPayment(ctx, reg.ID, 60000, model.PaymentMethodTransfer, 42, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.TotalPaid != 100000 {
		t.Fatalf("second payment: %+v", result)
	}
	if reg.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("payment status after full = %s", reg.PaymentStatus)
	}
}

func TestAddPaymentRequiresApproval(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	student := model.NewStudent(555, "Лина", "0912345678", time.Now())
	reg := model.NewRegistration(student.ID, course.ID, time.Now())
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(student), newFakeRegistrationStore(reg), &fakePaymentStore{})

	result, err := svc.AddPayment(context.Background(), reg.ID, 40000, model.PaymentMethodCash, 42, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Error != "Can only add payments to approved registrations" {
		t.Fatalf("pending registration must reject payment, got %+v", result)
	}
}

func TestCourseRoster(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	student := model.NewStudent(555, "Лина", "0912345678", time.Now())
	reg := model.NewRegistration(student.ID, course.ID, time.Now())
	reg.Status = model.RegistrationStatusApproved
	payments := &fakePaymentStore{}
	payments.payments = append(payments.payments, model.NewPaymentRecord(reg.ID, 30000, model.PaymentMethodCash, 42, time.Now(), ""))
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(student), newFakeRegistrationStore(reg), payments)

	roster, err := svc.CourseRoster(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("roster size = %d", len(roster))
	}
	entry := roster[0]
	if entry.TotalPaid != 30000 || entry.Remaining != 70000 {
		t.Fatalf("roster amounts: paid=%v remaining=%v", entry.TotalPaid, entry.Remaining)
	}
}

func TestCompleteProfile(t *testing.T) {
	course := testCourse(model.CourseStatusPublished, 10)
	svc := newTestRegistrationService(newFakeCourseStore(course), newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{})

	if _, err := svc.RequestRegistration(context.Background(), 555, "Лина Халед", "0912345678", course.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	student, err := svc.CompleteProfile(context.Background(), 555, ProfileParams{
		Gender:         "female",
		Age:            24,
		Residence:      "Damascus",
		EducationLevel: "bachelor",
		Specialization: "economics",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student == nil {
		t.Fatal("student not found")
	}
	if !student.ProfileCompleted {
		t.Fatal("profile_completed not set")
	}
	if student.Gender != "female" || student.Age != 24 || student.Residence != "Damascus" {
		t.Fatalf("profile fields not saved: %+v", student)
	}
	if student.EducationLevel != "bachelor" || student.Specialization != "economics" {
		t.Fatalf("profile fields not saved: %+v", student)
	}

	saved, err := svc.Student(context.Background(), 555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved.ProfileCompleted || saved.Age != 24 {
		t.Fatalf("profile not persisted: %+v", saved)
	}
}

func TestCompleteProfileUnknownStudent(t *testing.T) {
	svc := newTestRegistrationService(newFakeCourseStore(), newFakeStudentStore(), newFakeRegistrationStore(), &fakePaymentStore{})

	student, err := svc.CompleteProfile(context.Background(), 999, ProfileParams{Age: 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student != nil {
		t.Fatalf("expected nil for unknown student, got %+v", student)
	}
}
