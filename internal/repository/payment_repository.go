package repository

import (
	"context"
	"fmt"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/repository/base"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection("payment_records")}
}

// GetByRegistration получает все оплаты по заявке
func (r *PaymentRepository) GetByRegistration(ctx context.Context, registrationID string) ([]*model.PaymentRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{"registration_id": registrationID})
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []*model.PaymentRecord
	for cursor.Next(ctx) {
		var payment model.PaymentRecord
		if err := cursor.Decode(&payment); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payment.PaidAt = timeutil.FromUTC(payment.PaidAt)
		payments = append(payments, &payment)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}

// TotalPaid считает сумму всех оплат по заявке
func (r *PaymentRepository) TotalPaid(ctx context.Context, registrationID string) (float64, error) {
	payments, err := r.GetByRegistration(ctx, registrationID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total, nil
}

// Save сохраняет запись об оплате (upsert)
func (r *PaymentRepository) Save(ctx context.Context, payment *model.PaymentRecord) error {
	doc := *payment
	doc.PaidAt = timeutil.ToUTC(payment.PaidAt)

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": payment.ID}, &doc, base.Upsert)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}
