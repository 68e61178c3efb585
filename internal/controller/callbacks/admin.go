package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/damascus-edu/training-center-bot/internal/app"
	"github.com/damascus-edu/training-center-bot/internal/controller/format"
	"github.com/damascus-edu/training-center-bot/internal/controller/keyboard"
	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/damascus-edu/training-center-bot/internal/locale"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ============================
// Посты
// ============================

// handleChoosePlatform фиксирует платформу создаваемого поста
// и запрашивает дату публикации
func (h *Handler) handleChoosePlatform(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	telegramID := callback.From.ID
	platform, recognized := model.ParsePlatform(callbackArg(callback.Data, ChoosePlatform))
	if !recognized {
		answerAlert(ctx, b, callback.ID, "❌ Unknown platform")
		return
	}

	h.StateManager.SetData(telegramID, "platform", string(platform))
	h.StateManager.SetState(telegramID, state.StatePostSchedule)

	answerCallback(ctx, b, callback.ID, "")
	h.sendMessage(ctx, b, chatID(callback),
		"🕐 When should it be published? Send date and time as YYYY-MM-DD HH:MM:")
}

// handleTriggerPosts запускает внеочередную проверку запланированных постов
func (h *Handler) handleTriggerPosts(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	answerCallback(ctx, b, callback.ID, "⏳")

	trigger := h.TriggerPosts
	if trigger == nil {
		trigger = h.PostService.CheckAndPublish
	}

	published, err := trigger(ctx)
	if errors.Is(err, app.ErrCheckInProgress) {
		h.sendMessage(ctx, b, chatID(callback),
			"⏳ A post check is already running, try again in a moment.")
		return
	}
	if err != nil {
		h.Logger.Error("Manual post check failed", zap.Error(err))
		h.sendMessage(ctx, b, chatID(callback), "❌ Post check failed: "+err.Error())
		return
	}

	h.sendMessage(ctx, b, chatID(callback),
		fmt.Sprintf("📤 Post check finished, %d post(s) published.", published))
}

// ============================
// Заявки
// ============================

// handlePendingList показывает все ожидающие заявки
func (h *Handler) handlePendingList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	pending, err := h.RegistrationService.PendingRegistrations(ctx)
	if err != nil {
		h.Logger.Error("Failed to list pending registrations", zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Failed to load registrations")
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	if len(pending) == 0 {
		h.sendMessage(ctx, b, chatID(callback), "📋 No pending registrations.")
		return
	}

	for _, entry := range pending {
		studentName := "?"
		phone := ""
		if entry.Student != nil {
			studentName = entry.Student.FullName
			phone = timeutil.FormatPhoneDisplay(entry.Student.PhoneNumber)
		}
		courseName := "?"
		if entry.Course != nil {
			courseName = entry.Course.Name
		}

		text := fmt.Sprintf("👤 %s\n📱 %s\n📚 %s\n📅 %s",
			studentName, phone, courseName,
			timeutil.FormatDateTime(entry.Registration.RegisteredAt))

		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("✅ Approve", ApproveRegistration+entry.Registration.ID),
				keyboard.Button("🚫 Reject", RejectRegistration+entry.Registration.ID),
			).
			Build()

		h.sendHTML(ctx, b, chatID(callback), text, kb)
	}
}

// handleApproveRegistration одобряет заявку и уведомляет студента
func (h *Handler) handleApproveRegistration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	registrationID := callbackArg(callback.Data, ApproveRegistration)

	result, err := h.RegistrationService.Approve(ctx, registrationID, callback.From.ID, "")
	if err != nil {
		h.Logger.Error("Failed to approve registration",
			zap.String("registration_id", registrationID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Approval failed")
		return
	}
	if !result.Success {
		answerAlert(ctx, b, callback.ID, "❌ "+result.Error)
		return
	}

	answerCallback(ctx, b, callback.ID, "✅")

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("💰 Add payment", AddPayment+registrationID)).
		Build()
	h.sendHTML(ctx, b, chatID(callback), "✅ Registration approved.", kb)

	h.notifyStudentOfDecision(ctx, b, result.Registration, "registration_approved")
}

// handleRejectRegistration запрашивает причину отклонения
func (h *Handler) handleRejectRegistration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	telegramID := callback.From.ID
	registrationID := callbackArg(callback.Data, RejectRegistration)

	h.StateManager.SetData(telegramID, "registration_id", registrationID)
	h.StateManager.SetState(telegramID, state.StateRejectReason)

	answerCallback(ctx, b, callback.ID, "")
	h.sendMessage(ctx, b, chatID(callback),
		"📝 Send the rejection reason (or \"-\" for none):")
}

// notifyStudentOfDecision уведомляет студента о решении по его заявке
func (h *Handler) notifyStudentOfDecision(ctx context.Context, b *bot.Bot, registration *model.Registration, key string) {
	student, err := h.RegistrationService.StudentByID(ctx, registration.StudentID)
	if err != nil || student == nil {
		h.Logger.Warn("Failed to notify student of decision",
			zap.String("registration_id", registration.ID), zap.Error(err))
		return
	}

	course, err := h.CourseService.Course(ctx, registration.CourseID)
	courseName := registration.CourseID
	if err == nil && course != nil {
		courseName = course.Name
	}

	lang := h.lang(ctx, student.TelegramID)
	h.sendMessage(ctx, b, student.TelegramID,
		fmt.Sprintf(locale.T(lang, key), courseName))
}

// ============================
// Курсы
// ============================

// handleCreateCourse начинает диалог создания курса
func (h *Handler) handleCreateCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	h.StateManager.SetState(callback.From.ID, state.StateCourseName)
	answerCallback(ctx, b, callback.ID, "")
	h.sendMessage(ctx, b, chatID(callback), "📚 Send the course name:")
}

// handleListCourses показывает все курсы для управления
func (h *Handler) handleListCourses(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	courses, err := h.CourseService.Courses(ctx, false)
	if err != nil {
		h.Logger.Error("Failed to list courses", zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Failed to load courses")
		return
	}

	answerCallback(ctx, b, callback.ID, "")
	h.sendCourseListPage(ctx, b, callback, courses, 0)
}

// handleAdminCourseListPage листает список курсов в админском меню
func (h *Handler) handleAdminCourseListPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	page, err := strconv.Atoi(callbackArg(callback.Data, AdminCourseListPage))
	if err != nil {
		answerCallback(ctx, b, callback.ID, "❌")
		return
	}

	courses, err := h.CourseService.Courses(ctx, false)
	if err != nil {
		h.Logger.Error("Failed to list courses", zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Failed to load courses")
		return
	}

	answerCallback(ctx, b, callback.ID, "")
	h.sendCourseListPage(ctx, b, callback, courses, page)
}

func (h *Handler) sendCourseListPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, courses []*model.Course, page int) {
	if len(courses) == 0 {
		h.sendMessage(ctx, b, chatID(callback), "No courses yet.")
		return
	}

	pageCourses, page, totalPages := keyboard.Paginate(courses, page, CoursesPerPage)
	kb := keyboard.NewBuilder().
		AddRows(CourseRows(pageCourses, ManageCourse)).
		AddPagination(AdminCourseListPage, page, totalPages)

	h.sendHTML(ctx, b, chatID(callback), "📚 <b>All courses</b>", kb.Build())
}

// handleManageCourse показывает карточку курса с админскими действиями
func (h *Handler) handleManageCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	courseID := callbackArg(callback.Data, ManageCourse)
	course, err := h.CourseService.Course(ctx, courseID)
	if err != nil || course == nil {
		answerAlert(ctx, b, callback.ID, "❌ Course not found")
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("👥 Roster", CourseRoster+course.ID)).
		Row(keyboard.Button("📁 Upload material", UploadToCourse+course.ID))

	// Переходы статуса вперёд по жизненному циклу курса.
	// Удаление доступно только черновикам и отменённым.
	switch course.Status {
	case model.CourseStatusDraft:
		kb.Row(keyboard.Button("🟢 Publish", SetCourseStatus+course.ID+":"+string(model.CourseStatusPublished)))
		kb.Row(keyboard.Button("🗑 Delete", DeleteCourse+course.ID))
	case model.CourseStatusPublished:
		kb.Row(
			keyboard.Button("▶️ Start", SetCourseStatus+course.ID+":"+string(model.CourseStatusOngoing)),
			keyboard.Button("❌ Cancel", SetCourseStatus+course.ID+":"+string(model.CourseStatusCancelled)),
		)
	case model.CourseStatusOngoing:
		kb.Row(keyboard.Button("✔️ Complete", SetCourseStatus+course.ID+":"+string(model.CourseStatusCompleted)))
	case model.CourseStatusCancelled:
		kb.Row(keyboard.Button("🗑 Delete", DeleteCourse+course.ID))
	}

	text := format.FormatCourse(course, model.LanguageEnglish) +
		"\n📊 " + format.CourseStatusDisplay(course.Status).Label(model.LanguageEnglish)

	h.sendHTML(ctx, b, chatID(callback), text, kb.Build())
}

// handleSetCourseStatus меняет статус курса
func (h *Handler) handleSetCourseStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	parts := strings.Split(callbackArg(callback.Data, SetCourseStatus), ":")
	if len(parts) != 2 {
		answerAlert(ctx, b, callback.ID, "❌ Bad request")
		return
	}
	courseID, status := parts[0], model.CourseStatus(parts[1])

	switch status {
	case model.CourseStatusPublished, model.CourseStatusOngoing,
		model.CourseStatusCompleted, model.CourseStatusCancelled:
	default:
		answerAlert(ctx, b, callback.ID, "❌ Unknown status")
		return
	}

	course, err := h.CourseService.UpdateStatus(ctx, courseID, status)
	if err != nil {
		h.Logger.Error("Failed to update course status",
			zap.String("course_id", courseID),
			zap.String("status", string(status)), zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Update failed")
		return
	}
	if course == nil {
		answerAlert(ctx, b, callback.ID, "❌ Course not found")
		return
	}

	answerCallback(ctx, b, callback.ID, "✅")
	h.sendHTML(ctx, b, chatID(callback), fmt.Sprintf(
		"✅ <b>%s</b> is now %s", course.Name,
		format.CourseStatusDisplay(course.Status).Label(model.LanguageEnglish)), nil)
}

// handleDeleteCourse удаляет черновик или отменённый курс
func (h *Handler) handleDeleteCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	courseID := callbackArg(callback.Data, DeleteCourse)
	result, err := h.CourseService.DeleteCourse(ctx, courseID)
	if err != nil {
		h.Logger.Error("Failed to delete course",
			zap.String("course_id", courseID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Delete failed")
		return
	}
	if !result.Success {
		answerAlert(ctx, b, callback.ID, "❌ "+result.Error)
		return
	}

	answerCallback(ctx, b, callback.ID, "🗑")
	h.sendMessage(ctx, b, chatID(callback), "🗑 Course deleted.")
}

// handleUploadToCourse начинает диалог загрузки материала
func (h *Handler) handleUploadToCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	telegramID := callback.From.ID
	courseID := callbackArg(callback.Data, UploadToCourse)

	h.StateManager.SetData(telegramID, "upload_course_id", courseID)
	h.StateManager.SetState(telegramID, state.StateUploadFile)

	answerCallback(ctx, b, callback.ID, "")
	h.sendMessage(ctx, b, chatID(callback),
		"📎 Send the file to upload (up to 20 MB). Use /cancel to abort.")
}

// handleCourseRoster показывает студентов курса с оплатами
func (h *Handler) handleCourseRoster(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	courseID := callbackArg(callback.Data, CourseRoster)
	roster, err := h.RegistrationService.CourseRoster(ctx, courseID)
	if err != nil {
		h.Logger.Error("Failed to load roster",
			zap.String("course_id", courseID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Failed to load roster")
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	if len(roster) == 0 {
		h.sendMessage(ctx, b, chatID(callback), "👥 No students on this course yet.")
		return
	}

	for _, entry := range roster {
		name := "?"
		phone := ""
		if entry.Student != nil {
			name = entry.Student.FullName
			phone = timeutil.FormatPhoneDisplay(entry.Student.PhoneNumber)
		}

		text := fmt.Sprintf("👤 %s\n📱 %s\n%s | %s\n💰 Paid %s, remaining %s",
			name, phone,
			format.RegistrationStatusDisplay(entry.Registration.Status).Label(model.LanguageEnglish),
			format.PaymentStatusDisplay(entry.Registration.PaymentStatus).Label(model.LanguageEnglish),
			format.FormatPrice(entry.TotalPaid),
			format.FormatPrice(entry.Remaining))

		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("💰 Add payment", AddPayment+entry.Registration.ID),
				keyboard.Button("🧾 History", PaymentHistory+entry.Registration.ID),
			).
			Build()

		h.sendHTML(ctx, b, chatID(callback), text, kb)
	}
}

// ============================
// Оплаты
// ============================

// handleAddPayment начинает диалог ввода суммы оплаты
func (h *Handler) handleAddPayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	telegramID := callback.From.ID
	registrationID := callbackArg(callback.Data, AddPayment)

	h.StateManager.SetData(telegramID, "registration_id", registrationID)
	h.StateManager.SetState(telegramID, state.StatePaymentAmount)

	answerCallback(ctx, b, callback.ID, "")
	h.sendMessage(ctx, b, chatID(callback),
		"💰 Send the amount, optionally with a method: \"50000\" or \"50000 transfer\".")
}

// handlePaymentHistory показывает историю оплат по заявке
func (h *Handler) handlePaymentHistory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if !h.requireAdmin(ctx, b, callback) {
		return
	}

	registrationID := callbackArg(callback.Data, PaymentHistory)
	payments, err := h.RegistrationService.PaymentHistory(ctx, registrationID)
	if err != nil {
		h.Logger.Error("Failed to load payment history",
			zap.String("registration_id", registrationID), zap.Error(err))
		answerAlert(ctx, b, callback.ID, "❌ Failed to load payments")
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	if len(payments) == 0 {
		h.sendMessage(ctx, b, chatID(callback), "🧾 No payments recorded yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🧾 <b>Payment history</b>\n\n")
	var total float64
	for _, payment := range payments {
		fmt.Fprintf(&sb, "• %s — %s (%s)\n",
			timeutil.FormatDateTime(payment.PaidAt),
			format.FormatPrice(payment.Amount),
			payment.Method)
		total += payment.Amount
	}
	fmt.Fprintf(&sb, "\n💰 Total: %s", format.FormatPrice(total))

	h.sendHTML(ctx, b, chatID(callback), sb.String(), nil)
}
