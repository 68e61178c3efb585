package callbacks

import (
	"context"

	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/damascus-edu/training-center-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler содержит все зависимости callback-обработчиков
type Handler struct {
	CourseService       *service.CourseService
	RegistrationService *service.RegistrationService
	PostService         *service.PostService
	NotificationService *service.NotificationService
	MaterialService     *service.MaterialService
	StateManager        *state.Manager
	AdminIDs            []int64
	Logger              *zap.Logger

	// TriggerPosts — внеочередная проверка постов через планировщик.
	// Ручной запуск и фоновый тик делят один мьютекс, иначе две
	// наложившиеся проверки опубликовали бы один пост дважды.
	TriggerPosts func(ctx context.Context) (int, error)
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	courseService *service.CourseService,
	registrationService *service.RegistrationService,
	postService *service.PostService,
	notificationService *service.NotificationService,
	materialService *service.MaterialService,
	stateManager *state.Manager,
	adminIDs []int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		CourseService:       courseService,
		RegistrationService: registrationService,
		PostService:         postService,
		NotificationService: notificationService,
		MaterialService:     materialService,
		StateManager:        stateManager,
		AdminIDs:            adminIDs,
		Logger:              logger,
	}
}

// IsAdmin проверяет входит ли пользователь в список администраторов
func (h *Handler) IsAdmin(telegramID int64) bool {
	for _, id := range h.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	h.route(ctx, b, callback)
}
