package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// PaymentRecord — запись об оплате. Записи только добавляются,
// сумма оплат по заявке = сумма всех её записей.
type PaymentRecord struct {
	ID             string        `bson:"_id" json:"id"`
	RegistrationID string        `bson:"registration_id" json:"registration_id"`
	Amount         float64       `bson:"amount" json:"amount"`
	PaidAt         time.Time     `bson:"paid_at" json:"paid_at"`
	Method         PaymentMethod `bson:"method" json:"method"`
	ReceivedBy     int64         `bson:"received_by" json:"received_by"` // Telegram ID администратора
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NewPaymentRecord создаёт новую запись об оплате
func NewPaymentRecord(registrationID string, amount float64, method PaymentMethod, receivedBy int64, now time.Time, notes string) *PaymentRecord {
	return &PaymentRecord{
		ID:             uuid.NewString(),
		RegistrationID: registrationID,
		Amount:         amount,
		PaidAt:         now,
		Method:         method,
		ReceivedBy:     receivedBy,
		Notes:          notes,
	}
}

// DerivePaymentStatus вычисляет статус оплаты по сумме оплат и цене курса
func DerivePaymentStatus(totalPaid, price float64) PaymentStatus {
	switch {
	case totalPaid >= price:
		return PaymentStatusPaid
	case totalPaid > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}
