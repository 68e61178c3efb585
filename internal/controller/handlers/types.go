package handlers

import (
	"context"

	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/damascus-edu/training-center-bot/internal/otp"
	"github.com/damascus-edu/training-center-bot/internal/service"
	"go.uber.org/zap"
)

// OTPSender доставляет код подтверждения на телефон (SMS-шлюз).
// Если не задан, регистрация проходит без подтверждения номера.
type OTPSender func(ctx context.Context, phone, code string) error

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	courseService       *service.CourseService
	registrationService *service.RegistrationService
	postService         *service.PostService
	notificationService *service.NotificationService
	materialService     *service.MaterialService
	otpStore            *otp.Store
	sendOTP             OTPSender
	stateManager        *state.Manager
	adminIDs            []int64
	logger              *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	courseService *service.CourseService,
	registrationService *service.RegistrationService,
	postService *service.PostService,
	notificationService *service.NotificationService,
	materialService *service.MaterialService,
	otpStore *otp.Store,
	stateManager *state.Manager,
	adminIDs []int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		courseService:       courseService,
		registrationService: registrationService,
		postService:         postService,
		notificationService: notificationService,
		materialService:     materialService,
		otpStore:            otpStore,
		stateManager:        stateManager,
		adminIDs:            adminIDs,
		logger:              logger,
	}
}

// SetOTPSender задаёт канал доставки кодов подтверждения
func (h *Handlers) SetOTPSender(sender OTPSender) {
	h.sendOTP = sender
}

// isAdmin проверяет входит ли пользователь в список администраторов
func (h *Handlers) isAdmin(telegramID int64) bool {
	for _, id := range h.adminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
