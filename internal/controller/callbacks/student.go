package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/damascus-edu/training-center-bot/internal/controller/format"
	"github.com/damascus-edu/training-center-bot/internal/controller/keyboard"
	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleSetLanguage переключает язык пользователя
func (h *Handler) handleSetLanguage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID

	language := model.LanguageArabic
	if callback.Data == LangEnglish {
		language = model.LanguageEnglish
	}

	if err := h.NotificationService.SetLanguage(ctx, telegramID, language); err != nil {
		h.Logger.Error("Failed to set language",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}

	answerCallback(ctx, b, callback.ID, "")
	h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "language_set"))
}

// handleToggleNotifications переключает уведомления пользователя
func (h *Handler) handleToggleNotifications(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID

	enabled := h.NotificationService.NotificationsEnabled(ctx, telegramID)
	if err := h.NotificationService.SetNotificationsEnabled(ctx, telegramID, !enabled); err != nil {
		h.Logger.Error("Failed to toggle notifications",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}

	if enabled {
		answerCallback(ctx, b, callback.ID, "🔕")
	} else {
		answerCallback(ctx, b, callback.ID, "🔔")
	}
	h.sendProfile(ctx, b, callback)
}

// handleProfileRefresh перерисовывает профиль студента
func (h *Handler) handleProfileRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	answerCallback(ctx, b, callback.ID, "")
	h.sendProfile(ctx, b, callback)
}

// sendProfile отправляет сводку заявок и оплат студента с кнопками управления
func (h *Handler) sendProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	lang := h.lang(ctx, telegramID)

	registrations, err := h.RegistrationService.StudentRegistrations(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to load student registrations",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "error_generic"))
		return
	}
	if len(registrations) == 0 {
		h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "my_profile_empty"))
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
			cancelLabel := "🚫 " + entry.Course.Name
			kb.Row(keyboard.Button(cancelLabel, CancelRegistration+entry.Registration.ID))
		}
	}

	notifLabel := "🔕 Mute notifications"
	if lang == model.LanguageArabic {
		notifLabel = "🔕 إيقاف الإشعارات"
	}
	if !h.NotificationService.NotificationsEnabled(ctx, telegramID) {
		notifLabel = "🔔 Enable notifications"
		if lang == model.LanguageArabic {
			notifLabel = "🔔 تفعيل الإشعارات"
		}
	}
	kb.Row(keyboard.Button(notifLabel, NotifToggle), keyboard.Button("🔄", ProfileRefresh))

	h.sendHTML(ctx, b, chatID(callback), sb.String(), kb.Build())
}

// handleCancelRegistration отменяет заявку самого студента.
// Чужую заявку отменить нельзя.
func (h *Handler) handleCancelRegistration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	registrationID := callbackArg(callback.Data, CancelRegistration)

	registration, err := h.RegistrationService.Registration(ctx, registrationID)
	if err != nil {
		h.Logger.Error("Failed to get registration",
			zap.String("registration_id", registrationID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}
	student, err := h.RegistrationService.Student(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to get student",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}
	if registration == nil || student == nil || registration.StudentID != student.ID {
		answerAlert(ctx, b, callback.ID, "❌")
		return
	}

	result, err := h.RegistrationService.Cancel(ctx, registrationID)
	if err != nil {
		h.Logger.Error("Failed to cancel registration",
			zap.String("registration_id", registrationID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}
	if !result.Success {
		answerAlert(ctx, b, callback.ID, result.Error)
		return
	}

	answerCallback(ctx, b, callback.ID, "✅")
	h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "registration_cancelled"))
	h.sendProfile(ctx, b, callback)
}

// CourseRows строит ряды кнопок списка курсов, по курсу на ряд.
// prefix определяет действие при нажатии (просмотр, запись, управление).
func CourseRows(courses []*model.Course, prefix string) [][]models.InlineKeyboardButton {
	rows := make([][]models.InlineKeyboardButton, 0, len(courses))
	for _, course := range courses {
		rows = append(rows, []models.InlineKeyboardButton{
			keyboard.Button(format.FormatCourseLine(course), prefix+course.ID),
		})
	}
	return rows
}

// handleCourseListPage листает список доступных курсов
func (h *Handler) handleCourseListPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	page, err := strconv.Atoi(callbackArg(callback.Data, CourseListPage))
	if err != nil {
		answerCallback(ctx, b, callback.ID, "❌")
		return
	}

	courses, err := h.CourseService.Courses(ctx, true)
	if err != nil {
		h.Logger.Error("Failed to list courses", zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	if len(courses) == 0 {
		h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "no_courses"))
		return
	}

	pageCourses, page, totalPages := keyboard.Paginate(courses, page, CoursesPerPage)
	kb := keyboard.NewBuilder().
		AddRows(CourseRows(pageCourses, ViewCourse)).
		AddPagination(CourseListPage, page, totalPages)

	h.sendHTML(ctx, b, chatID(callback), h.tr(ctx, telegramID, "courses_header"), kb.Build())
}

// handleViewCourse показывает карточку курса с кнопками записи и материалов
func (h *Handler) handleViewCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	courseID := callbackArg(callback.Data, ViewCourse)

	course, err := h.CourseService.Course(ctx, courseID)
	if err != nil {
		h.Logger.Error("Failed to get course",
			zap.String("course_id", courseID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}
	if course == nil {
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "course_not_found"))
		return
	}

	lang := h.lang(ctx, telegramID)
	registerLabel := "✍️ Register"
	materialsLabel := "📁 Materials"
	if lang == model.LanguageArabic {
		registerLabel = "✍️ التسجيل"
		materialsLabel = "📁 المواد"
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button(registerLabel, RegisterCourse+course.ID),
			keyboard.Button(materialsLabel, ViewMaterials+course.ID),
		).
		Build()

	answerCallback(ctx, b, callback.ID, "")
	h.sendHTML(ctx, b, chatID(callback), format.FormatCourse(course, lang), kb)
}

// handleViewMaterials показывает материалы курса со ссылками на Google Drive
func (h *Handler) handleViewMaterials(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	courseID := callbackArg(callback.Data, ViewMaterials)

	course, err := h.CourseService.Course(ctx, courseID)
	if err != nil || course == nil {
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "course_not_found"))
		return
	}

	materials, err := h.MaterialService.Materials(ctx, courseID)
	if err != nil {
		h.Logger.Error("Failed to list materials",
			zap.String("course_id", courseID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	if len(materials) == 0 {
		h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "materials_none"))
		return
	}

	kb := keyboard.NewBuilder()
	for _, material := range materials {
		kb.Row(keyboard.URLButton("📄 "+material.Name, material.Link))
	}

	h.sendHTML(ctx, b, chatID(callback),
		h.tr(ctx, telegramID, "materials_header", course.Name), kb.Build())
}

// handleRegisterCourse начинает запись на курс.
// Студенту с заполненным профилем заявка создаётся сразу,
// новому запускается диалог имя - телефон - код подтверждения.
func (h *Handler) handleRegisterCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	courseID := callbackArg(callback.Data, RegisterCourse)

	course, err := h.CourseService.Course(ctx, courseID)
	if err != nil {
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}
	if course == nil {
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "course_not_found"))
		return
	}
	if !course.IsAvailable() {
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "course_not_available"))
		return
	}

	student, err := h.RegistrationService.Student(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to load student",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, telegramID, "error_generic"))
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	if student != nil && student.FullName != "" && student.PhoneNumber != "" {
		h.registerExistingStudent(ctx, b, callback, student, course)
		return
	}

	h.StateManager.SetData(telegramID, "course_id", courseID)
	h.StateManager.SetState(telegramID, state.StateRegisterName)
	h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "ask_name"))
}

// registerExistingStudent создаёт заявку для студента с заполненным профилем
func (h *Handler) registerExistingStudent(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, student *model.Student, course *model.Course) {
	telegramID := callback.From.ID

	result, err := h.RegistrationService.RequestRegistration(ctx, telegramID, student.FullName, student.PhoneNumber, course.ID)
	if err != nil {
		h.Logger.Error("Failed to request registration",
			zap.Int64("telegram_id", telegramID),
			zap.String("course_id", course.ID), zap.Error(err))
		h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "error_generic"))
		return
	}

	if !result.Success {
		h.sendMessage(ctx, b, chatID(callback), h.registrationErrorText(ctx, telegramID, result.Error))
		return
	}

	h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "registration_received", course.Name))
	h.notifyAdminsOfRegistration(ctx, b, result.Student, result.Registration.ID, course.Name)

	if !result.Student.ProfileCompleted {
		h.StateManager.SetState(telegramID, state.StateProfileGender)
		h.sendMessage(ctx, b, chatID(callback), h.tr(ctx, telegramID, "ask_gender"))
	}
}

// registrationErrorText переводит бизнес-отказ сервиса в локализованный текст
func (h *Handler) registrationErrorText(ctx context.Context, telegramID int64, serviceError string) string {
	switch serviceError {
	case "Course is full":
		return h.tr(ctx, telegramID, "course_full")
	case "Already registered for this course":
		return h.tr(ctx, telegramID, "already_registered")
	case "Course not found":
		return h.tr(ctx, telegramID, "course_not_found")
	case "Course is not available for registration":
		return h.tr(ctx, telegramID, "course_not_available")
	default:
		return h.tr(ctx, telegramID, "error_generic")
	}
}

// notifyAdminsOfRegistration шлёт администраторам карточку новой заявки
func (h *Handler) notifyAdminsOfRegistration(ctx context.Context, b *bot.Bot, student *model.Student, registrationID, courseName string) {
	text := fmt.Sprintf(
		"📥 <b>New registration request</b>\n\n"+
			"👤 %s\n📱 %s\n📚 %s",
		student.FullName,
		timeutil.FormatPhoneDisplay(student.PhoneNumber),
		courseName,
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Approve", ApproveRegistration+registrationID),
			keyboard.Button("🚫 Reject", RejectRegistration+registrationID),
		).
		Build()

	for _, adminID := range h.AdminIDs {
		h.sendHTML(ctx, b, adminID, text, kb)
	}
}
