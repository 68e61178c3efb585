package model

// UserPreferences — настройки пользователя Telegram, ключ — telegram_id
type UserPreferences struct {
	TelegramID           int64    `bson:"_id" json:"telegram_id"`
	Language             Language `bson:"language" json:"language"`
	NotificationsEnabled bool     `bson:"notifications_enabled" json:"notifications_enabled"`
}

// NewUserPreferences создаёт настройки по умолчанию: арабский, уведомления включены
func NewUserPreferences(telegramID int64) *UserPreferences {
	return &UserPreferences{
		TelegramID:           telegramID,
		Language:             LanguageArabic,
		NotificationsEnabled: true,
	}
}
