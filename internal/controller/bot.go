package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/damascus-edu/training-center-bot/internal/controller/callbacks"
	"github.com/damascus-edu/training-center-bot/internal/controller/handlers"
	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/damascus-edu/training-center-bot/internal/locale"
	"github.com/damascus-edu/training-center-bot/internal/otp"
	"github.com/damascus-edu/training-center-bot/internal/service"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	adminIDs        []int64
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	courseService *service.CourseService,
	registrationService *service.RegistrationService,
	postService *service.PostService,
	notificationService *service.NotificationService,
	materialService *service.MaterialService,
	otpStore *otp.Store,
	adminIDs []int64,
	logger *zap.Logger,
) *BotController {
	// Менеджер состояний общий для команд и callbacks
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		courseService,
		registrationService,
		postService,
		notificationService,
		materialService,
		otpStore,
		stateManager,
		adminIDs,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		courseService,
		registrationService,
		postService,
		notificationService,
		materialService,
		stateManager,
		adminIDs,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		adminIDs:        adminIDs,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/courses", bot.MatchTypeExact, c.handlers.HandleCourses)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypeExact, c.handlers.HandleRegister)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/materials", bot.MatchTypeExact, c.handlers.HandleMaterials)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypeExact, c.handlers.HandleProfile)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/language", bot.MatchTypeExact, c.handlers.HandleLanguage)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды администратора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handlers.HandleAdmin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/post", bot.MatchTypeExact, c.handlers.HandlePost)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypeExact, c.handlers.HandleBroadcast)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/upload", bot.MatchTypeExact, c.handlers.HandleUpload)

	// Текстовые сообщения (диалоги с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Файлы (диалог загрузки материалов)
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && update.Message.Document != nil
	}, c.handlers.HandleDocument)

	// Нажатия inline кнопок
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// SetOTPSender задаёт канал доставки кодов подтверждения номера
func (c *BotController) SetOTPSender(sender handlers.OTPSender) {
	c.handlers.SetOTPSender(sender)
}

// SetPostTrigger подключает ручную проверку постов к планировщику,
// чтобы админская кнопка и фоновый тик не публиковали наперегонки
func (c *BotController) SetPostTrigger(trigger func(ctx context.Context) (int, error)) {
	c.callbackHandler.TriggerPosts = trigger
}

// NotifyAdmins шлёт сообщение всем администраторам.
// Используется планировщиком постов для отчётов об ошибках.
func (c *BotController) NotifyAdmins(ctx context.Context, text string) {
	for _, adminID := range c.adminIDs {
		_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: adminID,
			Text:   text,
		})
		if err != nil {
			c.logger.Error("Failed to notify admin",
				zap.Int64("admin_id", adminID), zap.Error(err))
		}
	}
}

// DeliverReminders рассылает напоминания о курсах, начинающихся через сутки.
// Вызывается планировщиком каждый цикл; window должен совпадать с интервалом
// планировщика, чтобы напоминание ушло один раз.
func (c *BotController) DeliverReminders(ctx context.Context, notificationService *service.NotificationService, window time.Duration) {
	reminders, err := notificationService.CoursesToRemind(ctx, window)
	if err != nil {
		c.logger.Error("Failed to collect course reminders", zap.Error(err))
		return
	}

	for _, reminder := range reminders {
		var text string
		if reminder.Paid {
			text = fmt.Sprintf(locale.T(reminder.Language, "course_reminder"),
				reminder.Course.Name, timeutil.FormatDate(reminder.Course.StartDate))
		} else {
			text = fmt.Sprintf(locale.T(reminder.Language, "payment_reminder"),
				reminder.Course.Name, reminder.Remaining)
		}

		_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: reminder.TelegramID,
			Text:   text,
		})
		if err != nil {
			c.logger.Warn("Failed to deliver course reminder",
				zap.Int64("telegram_id", reminder.TelegramID), zap.Error(err))
		}
	}

	if len(reminders) > 0 {
		c.logger.Info("Course reminders delivered", zap.Int("count", len(reminders)))
	}
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 البداية | Start"},
		{Command: "courses", Description: "📚 الدورات | Courses"},
		{Command: "register", Description: "✍️ التسجيل | Register"},
		{Command: "materials", Description: "📁 المواد | Materials"},
		{Command: "profile", Description: "👤 ملفي | My profile"},
		{Command: "language", Description: "🌐 اللغة | Language"},
		{Command: "help", Description: "❓ المساعدة | Help"},
		{Command: "cancel", Description: "✖️ إلغاء | Cancel"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
