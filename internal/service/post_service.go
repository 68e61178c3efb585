package service

import (
	"context"
	"fmt"
	"time"

	"github.com/damascus-edu/training-center-bot/internal/adapter/metagraph"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.uber.org/zap"
)

// PostService публикует запланированные посты.
// Источники: таблица Google Sheets и посты, созданные администратором в боте.
type PostService struct {
	source    PostSource
	publisher SocialPublisher
	posts     PostStore
	logger    *zap.Logger

	onSuccess func(ctx context.Context, post *model.ScheduledPost, result *PublishPostResult)
	onError   func(ctx context.Context, message string)
}

func NewPostService(source PostSource, publisher SocialPublisher, posts PostStore, logger *zap.Logger) *PostService {
	return &PostService{
		source:    source,
		publisher: publisher,
		posts:     posts,
		logger:    logger,
	}
}

// SetCallbacks задаёт колбэки уведомления администратора.
// Вызывается при сборке бота, до старта планировщика.
func (s *PostService) SetCallbacks(
	onSuccess func(ctx context.Context, post *model.ScheduledPost, result *PublishPostResult),
	onError func(ctx context.Context, message string),
) {
	s.onSuccess = onSuccess
	s.onError = onError
}

// PublishPostResult — результат публикации одного поста
type PublishPostResult struct {
	Success          bool
	Facebook         *metagraph.PublishResult
	Instagram        *metagraph.PublishResult
	Error            string
	SkippedInstagram bool
}

// Publish публикует пост на указанные платформы.
// Instagram без картинки: для платформы instagram пост пропускается с ошибкой,
// для both публикуется только Facebook и это не считается провалом.
func (s *PostService) Publish(ctx context.Context, post *model.ScheduledPost) *PublishPostResult {
	if err := post.ValidateForInstagram(); err != nil {
		if post.Platform == model.PlatformInstagram {
			return &PublishPostResult{
				Error:            err.Error(),
				SkippedInstagram: true,
			}
		}
		// both: публикуем только Facebook
		s.logger.Warn("Post has no image, publishing to Facebook only",
			zap.String("post_id", post.ID))
	}

	result := &PublishPostResult{
		SkippedInstagram: post.RequiresImage() && !post.CanPublishToInstagram(),
	}

	if post.Platform == model.PlatformFacebook || post.Platform == model.PlatformBoth {
		result.Facebook = s.publisher.PublishToFacebook(ctx, post.Content, post.ImageURL)
	}

	if (post.Platform == model.PlatformInstagram || post.Platform == model.PlatformBoth) && post.CanPublishToInstagram() {
		result.Instagram = s.publisher.PublishToInstagram(ctx, post.ImageURL, post.Content)
	}

	switch post.Platform {
	case model.PlatformFacebook:
		result.Success = result.Facebook != nil && result.Facebook.Success
	case model.PlatformInstagram:
		result.Success = result.Instagram != nil && result.Instagram.Success
	default: // both: Instagram не считается если был непригоден
		facebookOK := result.Facebook != nil && result.Facebook.Success
		instagramOK := true
		if post.CanPublishToInstagram() {
			instagramOK = result.Instagram != nil && result.Instagram.Success
		}
		result.Success = facebookOK && instagramOK
	}

	if !result.Success && result.Error == "" {
		result.Error = publishErrorMessage(result)
	}

	return result
}

// CheckAndPublish выполняет один цикл проверки: забирает pending-посты,
// публикует наступившие и отражает результат в источнике.
// Возвращает число успешно опубликованных постов.
// Сбой чтения из Sheets прерывает весь цикл; сбой одного поста
// не мешает остальным.
func (s *PostService) CheckAndPublish(ctx context.Context) (int, error) {
	var posts []*model.ScheduledPost
	if s.source != nil {
		sheetPosts, err := s.source.GetScheduledPosts(ctx)
		if err != nil {
			return 0, fmt.Errorf("fetch posts from source: %w", err)
		}
		posts = sheetPosts
	}
	if s.posts != nil {
		stored, err := s.posts.GetPending(ctx)
		if err != nil {
			// Посты из таблицы публикуем даже если Mongo недоступна
			s.logger.Error("Failed to load stored pending posts", zap.Error(err))
		} else {
			posts = append(posts, stored...)
		}
	}

	published := 0
	for _, post := range posts {
		if !timeutil.IsPastOrNow(post.ScheduledDatetime) {
			continue
		}

		result := s.Publish(ctx, post)
		if result.Success {
			if err := s.markPublished(ctx, post); err != nil {
				s.logger.Error("Failed to mark post as published",
					zap.String("post_id", post.ID), zap.Error(err))
				continue
			}
			published++
			s.logger.Info("Published post",
				zap.String("post_id", post.ID),
				zap.Int("sheet_row", post.SheetRowIndex),
				zap.String("platform", string(post.Platform)))
			if s.onSuccess != nil {
				s.onSuccess(ctx, post, result)
			}
			continue
		}

		errorMsg := result.Error
		if errorMsg == "" {
			errorMsg = "Unknown error"
		}
		s.logger.Error("Failed to publish post",
			zap.String("post_id", post.ID),
			zap.Int("sheet_row", post.SheetRowIndex),
			zap.String("error", errorMsg))

		// Статус не меняем: пост остаётся pending и будет
		// переpublikован на следующем цикле
		if err := s.annotateFailure(ctx, post, errorMsg); err != nil {
			s.logger.Error("Failed to record post error",
				zap.String("post_id", post.ID), zap.Error(err))
		}
		if s.onError != nil {
			s.onError(ctx, "Failed to publish post: "+errorMsg)
		}
	}

	return published, nil
}

// SchedulePost создаёт пост, добавленный администратором в боте
func (s *PostService) SchedulePost(ctx context.Context, content string, scheduledAt time.Time, platform model.Platform, imageURL string) (*model.ScheduledPost, error) {
	post := model.NewScheduledPost(content, scheduledAt, platform, imageURL, 0)
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("Post scheduled",
		zap.String("post_id", post.ID),
		zap.Time("scheduled_at", scheduledAt),
		zap.String("platform", string(platform)))
	return post, nil
}

func (s *PostService) markPublished(ctx context.Context, post *model.ScheduledPost) error {
	if post.SheetRowIndex > 0 {
		return s.source.MarkPublished(ctx, post.SheetRowIndex)
	}

	now := timeutil.Now()
	post.Status = model.PostStatusPublished
	post.PublishedAt = &now
	post.ErrorMessage = ""
	return s.posts.Save(ctx, post)
}

func (s *PostService) annotateFailure(ctx context.Context, post *model.ScheduledPost, message string) error {
	if post.SheetRowIndex > 0 {
		return s.source.AddErrorNote(ctx, post.SheetRowIndex, message)
	}

	post.ErrorMessage = message
	return s.posts.Save(ctx, post)
}

func publishErrorMessage(result *PublishPostResult) string {
	if result.Facebook != nil && !result.Facebook.Success {
		return result.Facebook.ErrorMessage
	}
	if result.Instagram != nil && !result.Instagram.Success {
		return result.Instagram.ErrorMessage
	}
	return ""
}
