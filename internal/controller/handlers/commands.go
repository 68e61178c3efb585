package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/damascus-edu/training-center-bot/internal/controller/callbacks"
	"github.com/damascus-edu/training-center-bot/internal/controller/format"
	"github.com/damascus-edu/training-center-bot/internal/controller/keyboard"
	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	student, err := h.registrationService.Student(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load student on /start",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if student != nil {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "welcome_back", student.FullName))
	}
	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "welcome"))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	helpText := h.tr(ctx, telegramID, "help")
	if h.isAdmin(telegramID) {
		helpText += "\n\n🛠 Admin:\n" +
			"/admin — admin menu\n" +
			"/post — schedule a social post\n" +
			"/broadcast — message all students\n" +
			"/upload — upload course material"
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCourses обрабатывает команду /courses - список доступных курсов
func (h *Handlers) HandleCourses(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	courses, err := h.courseService.Courses(ctx, true)
	if err != nil {
		h.logger.Error("Failed to list courses", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if len(courses) == 0 {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "no_courses"))
		return
	}

	pageCourses, page, totalPages := keyboard.Paginate(courses, 0, callbacks.CoursesPerPage)
	kb := keyboard.NewBuilder().
		AddRows(callbacks.CourseRows(pageCourses, callbacks.ViewCourse)).
		AddPagination(callbacks.CourseListPage, page, totalPages)

	h.sendHTML(ctx, b, chatID, h.tr(ctx, telegramID, "courses_header"), kb.Build())
}

// HandleRegister обрабатывает команду /register - выбор курса для записи
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	courses, err := h.courseService.Courses(ctx, true)
	if err != nil {
		h.logger.Error("Failed to list courses for registration", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if len(courses) == 0 {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "no_courses"))
		return
	}

	kb := keyboard.NewBuilder()
	for _, course := range courses {
		kb.Row(keyboard.Button(format.FormatCourseLine(course), callbacks.RegisterCourse+course.ID))
	}

	h.sendHTML(ctx, b, chatID, h.tr(ctx, telegramID, "choose_course"), kb.Build())
}

// HandleMaterials обрабатывает команду /materials - выбор курса для просмотра материалов
func (h *Handlers) HandleMaterials(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	courses, err := h.courseService.Courses(ctx, true)
	if err != nil {
		h.logger.Error("Failed to list courses for materials", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if len(courses) == 0 {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "no_courses"))
		return
	}

	kb := keyboard.NewBuilder()
	for _, course := range courses {
		kb.Row(keyboard.Button(format.FormatCourseLine(course), callbacks.ViewMaterials+course.ID))
	}

	h.sendHTML(ctx, b, chatID, h.tr(ctx, telegramID, "materials_choose"), kb.Build())
}

// HandleLanguage обрабатывает команду /language - смена языка
func (h *Handlers) HandleLanguage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("العربية 🇸🇾", callbacks.LangArabic),
			keyboard.Button("English 🇬🇧", callbacks.LangEnglish),
		).
		Build()

	h.sendHTML(ctx, b, update.Message.Chat.ID, h.tr(ctx, telegramID, "choose_language"), kb)
}

// HandleProfile обрабатывает команду /profile - заявки и оплаты студента
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	lang := h.lang(ctx, telegramID)

	registrations, err := h.registrationService.StudentRegistrations(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load student registrations",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if len(registrations) == 0 {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "my_profile_empty"))
		return
	}

	var sb strings.Builder
	kb := keyboard.NewBuilder()
	for _, entry := range registrations {
		fmt.Fprintf(&sb, "%s <b>%s</b>\n%s | %s\n\n",
			format.RegistrationStatusDisplay(entry.Registration.Status).Emoji,
			entry.Course.Name,
			format.RegistrationStatusDisplay(entry.Registration.Status).Text(lang),
			format.PaymentStatusDisplay(entry.Registration.PaymentStatus).Label(lang))

		if entry.Registration.Status == model.RegistrationStatusPending ||
			entry.Registration.Status == model.RegistrationStatusApproved {
			kb.Row(keyboard.Button("🚫 "+entry.Course.Name, callbacks.CancelRegistration+entry.Registration.ID))
		}
	}

	notifLabel := "🔕 Mute notifications"
	if lang == model.LanguageArabic {
		notifLabel = "🔕 إيقاف الإشعارات"
	}
	if !h.notificationService.NotificationsEnabled(ctx, telegramID) {
		notifLabel = "🔔 Enable notifications"
		if lang == model.LanguageArabic {
			notifLabel = "🔔 تفعيل الإشعارات"
		}
	}
	kb.Row(keyboard.Button(notifLabel, callbacks.NotifToggle), keyboard.Button("🔄", callbacks.ProfileRefresh))

	h.sendHTML(ctx, b, chatID, sb.String(), kb.Build())
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, h.tr(ctx, telegramID, "nothing_to_cancel"))
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, h.tr(ctx, telegramID, "cancelled"))
}

// HandleAdmin обрабатывает команду /admin - главное админское меню
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Pending registrations", callbacks.PendingList)).
		Row(keyboard.Button("📚 Manage courses", callbacks.ListCourses)).
		Row(keyboard.Button("➕ New course", callbacks.CreateCourse)).
		Row(keyboard.Button("📤 Check posts now", callbacks.TriggerPostsNow)).
		Build()

	h.sendHTML(ctx, b, update.Message.Chat.ID, "🛠 <b>Admin menu</b>", kb)
}

// HandlePost обрабатывает команду /post - создание запланированного поста
func (h *Handlers) HandlePost(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetState(telegramID, state.StatePostContent)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📝 Send the post text.\n\nUse /cancel to abort.")
}

// HandleBroadcast обрабатывает команду /broadcast - рассылка всем студентам
func (h *Handlers) HandleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetState(telegramID, state.StateBroadcastText)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📣 Send the message to broadcast to all students.\n\nUse /cancel to abort.")
}

// HandleUpload обрабатывает команду /upload - загрузка материала в курсы
func (h *Handlers) HandleUpload(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	courses, err := h.courseService.Courses(ctx, false)
	if err != nil {
		h.logger.Error("Failed to list courses for upload", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if len(courses) == 0 {
		h.sendMessage(ctx, b, chatID, "No courses yet. Create one first: /admin")
		return
	}

	kb := keyboard.NewBuilder()
	for _, course := range courses {
		kb.Row(keyboard.Button(format.FormatCourseLine(course), callbacks.UploadToCourse+course.ID))
	}

	h.sendHTML(ctx, b, chatID, "📁 Choose the course to upload material to:", kb.Build())
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		return
	}

	h.logger.Info("Dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateRegisterName:
		h.handleRegisterName(ctx, b, update)
	case state.StateRegisterPhone:
		h.handleRegisterPhone(ctx, b, update)
	case state.StateRegisterOTP:
		h.handleRegisterOTP(ctx, b, update)
	case state.StateProfileGender:
		h.handleProfileGender(ctx, b, update)
	case state.StateProfileAge:
		h.handleProfileAge(ctx, b, update)
	case state.StateProfileResidence:
		h.handleProfileResidence(ctx, b, update)
	case state.StateProfileEducation:
		h.handleProfileEducation(ctx, b, update)
	case state.StateProfileSpecialization:
		h.handleProfileSpecialization(ctx, b, update)
	case state.StateCourseName:
		h.handleCourseName(ctx, b, update)
	case state.StateCourseDescription:
		h.handleCourseDescription(ctx, b, update)
	case state.StateCourseInstructor:
		h.handleCourseInstructor(ctx, b, update)
	case state.StateCourseStartDate:
		h.handleCourseStartDate(ctx, b, update)
	case state.StateCourseEndDate:
		h.handleCourseEndDate(ctx, b, update)
	case state.StateCoursePrice:
		h.handleCoursePrice(ctx, b, update)
	case state.StateCourseMaxStudents:
		h.handleCourseMaxStudents(ctx, b, update)
	case state.StatePostContent:
		h.handlePostContent(ctx, b, update)
	case state.StatePostImageURL:
		h.handlePostImageURL(ctx, b, update)
	case state.StatePostSchedule:
		h.handlePostSchedule(ctx, b, update)
	case state.StateBroadcastText:
		h.handleBroadcastText(ctx, b, update)
	case state.StatePaymentAmount:
		h.handlePaymentAmount(ctx, b, update)
	case state.StateRejectReason:
		h.handleRejectReason(ctx, b, update)
	case state.StateUploadFile:
		// Материал принимается только документом
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"📎 Send the file as a document, or /cancel to abort.")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
