package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusPending   PostStatus = "pending"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
	PostStatusSkipped   PostStatus = "skipped"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformBoth      Platform = "both"
)

var ErrInstagramRequiresImage = errors.New("instagram posts require a valid image_url")

// ScheduledPost — запланированный пост в соцсети.
// Источник: таблица Google Sheets (sheet_row_index > 0) либо создан администратором в боте.
// Статус меняется только вперёд: pending -> published/failed.
type ScheduledPost struct {
	ID                string     `bson:"_id" json:"id"`
	Content           string     `bson:"content" json:"content"`
	ScheduledDatetime time.Time  `bson:"scheduled_datetime" json:"scheduled_datetime"`
	Platform          Platform   `bson:"platform" json:"platform"`
	Status            PostStatus `bson:"status" json:"status"`
	ImageURL          string     `bson:"image_url,omitempty" json:"image_url,omitempty"`
	PublishedAt       *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	ErrorMessage      string     `bson:"error_message,omitempty" json:"error_message,omitempty"`
	SheetRowIndex     int        `bson:"sheet_row_index,omitempty" json:"sheet_row_index,omitempty"` // Строка-источник в Google Sheets (1-based)
}

// NewScheduledPost создаёт новый пост в статусе pending
func NewScheduledPost(content string, scheduledAt time.Time, platform Platform, imageURL string, sheetRowIndex int) *ScheduledPost {
	return &ScheduledPost{
		ID:                uuid.NewString(),
		Content:           content,
		ScheduledDatetime: scheduledAt,
		Platform:          platform,
		Status:            PostStatusPending,
		ImageURL:          imageURL,
		SheetRowIndex:     sheetRowIndex,
	}
}

// RequiresImage — нужна ли посту картинка (Instagram без картинки не публикуется)
func (p *ScheduledPost) RequiresImage() bool {
	return p.Platform == PlatformInstagram || p.Platform == PlatformBoth
}

// CanPublishToInstagram проверяет есть ли у поста пригодная картинка
func (p *ScheduledPost) CanPublishToInstagram() bool {
	return strings.TrimSpace(p.ImageURL) != ""
}

// ValidateForInstagram возвращает ошибку если пост нацелен на Instagram,
// но не может быть туда опубликован
func (p *ScheduledPost) ValidateForInstagram() error {
	if p.RequiresImage() && !p.CanPublishToInstagram() {
		return ErrInstagramRequiresImage
	}
	return nil
}

// ParsePlatform парсит платформу из свободного текста.
// Нераспознанное значение трактуется как both.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformFacebook:
		return PlatformFacebook, true
	case PlatformInstagram:
		return PlatformInstagram, true
	case PlatformBoth:
		return PlatformBoth, true
	default:
		return PlatformBoth, false
	}
}
