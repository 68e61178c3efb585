package repository

import (
	"context"
	"fmt"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/repository/base"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PreferencesRepository struct {
	col *mongo.Collection
}

func NewPreferencesRepository(db *mongo.Database) *PreferencesRepository {
	return &PreferencesRepository{col: db.Collection("user_preferences")}
}

// GetByTelegramID получает настройки пользователя
func (r *PreferencesRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	err := r.col.FindOne(ctx, bson.M{"_id": telegramID}).Decode(&prefs)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &prefs, nil
}

// Save сохраняет настройки (upsert)
func (r *PreferencesRepository) Save(ctx context.Context, prefs *model.UserPreferences) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": prefs.TelegramID}, prefs, base.Upsert)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// SetLanguage устанавливает язык, создавая настройки если их нет
func (r *PreferencesRepository) SetLanguage(ctx context.Context, telegramID int64, language model.Language) error {
	existing, err := r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	if existing == nil {
		existing = model.NewUserPreferences(telegramID)
	}
	existing.Language = language
	return r.Save(ctx, existing)
}

// Muted получает telegram_id пользователей, отключивших уведомления.
// Пользователи без записи настроек считаются подписанными и сюда не попадают.
func (r *PreferencesRepository) Muted(ctx context.Context) ([]int64, error) {
	cursor, err := r.col.Find(ctx, bson.M{"notifications_enabled": false})
	if err != nil {
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	defer cursor.Close(ctx)

	var result []int64
	for cursor.Next(ctx) {
		var prefs model.UserPreferences
		if err := cursor.Decode(&prefs); err != nil {
			return nil, fmt.Errorf("decode preferences: %w", err)
		}
		result = append(result, prefs.TelegramID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}
	return result, nil
}
