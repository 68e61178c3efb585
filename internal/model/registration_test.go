package model

import (
	"testing"
	"time"
)

func TestNewRegistration(t *testing.T) {
	now := time.Now()
	r := NewRegistration("student-1", "course-1", now)

	if r.ID == "" {
		t.Fatal("registration must get an ID")
	}
	if r.Status != RegistrationStatusPending {
		t.Fatalf("status = %s, want pending", r.Status)
	}
	if r.PaymentStatus != PaymentStatusUnpaid {
		t.Fatalf("payment status = %s, want unpaid", r.PaymentStatus)
	}
	if r.ApprovedAt != nil {
		t.Fatal("new registration must not be approved")
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		totalPaid float64
		price     float64
		want      PaymentStatus
	}{
		{0, 100000, PaymentStatusUnpaid},
		{50000, 100000, PaymentStatusPartial},
		{100000, 100000, PaymentStatusPaid},
		{150000, 100000, PaymentStatusPaid},
		{0, 0, PaymentStatusPaid}, // бесплатный курс считается оплаченным
	}
	for _, c := range cases {
		if got := DerivePaymentStatus(c.totalPaid, c.price); got != c.want {
			t.Fatalf("DerivePaymentStatus(%v, %v) = %s, want %s", c.totalPaid, c.price, got, c.want)
		}
	}
}

func TestCourseIsAvailable(t *testing.T) {
	cases := map[CourseStatus]bool{
		CourseStatusDraft:     false,
		CourseStatusPublished: true,
		CourseStatusOngoing:   true,
		CourseStatusCompleted: false,
		CourseStatusCancelled: false,
	}
	for status, want := range cases {
		c := &Course{Status: status}
		if c.IsAvailable() != want {
			t.Fatalf("IsAvailable with status %s = %v, want %v", status, c.IsAvailable(), want)
		}
	}
}
