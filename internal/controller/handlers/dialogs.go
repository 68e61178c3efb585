package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/damascus-edu/training-center-bot/internal/controller/callbacks"
	"github.com/damascus-edu/training-center-bot/internal/controller/format"
	"github.com/damascus-edu/training-center-bot/internal/controller/keyboard"
	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/damascus-edu/training-center-bot/internal/locale"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/otp"
	"github.com/damascus-edu/training-center-bot/internal/service"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// skipMark — ответ "пропустить" в необязательных шагах диалога
const skipMark = "-"

// ============================
// Регистрация студента на курс
// ============================

// handleRegisterName обрабатывает ввод полного имени
func (h *Handlers) handleRegisterName(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	if len([]rune(name)) < 2 {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "ask_name"))
		return
	}

	h.stateManager.SetData(telegramID, "full_name", name)
	h.stateManager.SetState(telegramID, state.StateRegisterPhone)
	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "ask_phone"))
}

// handleRegisterPhone обрабатывает ввод номера телефона.
// Номер нормализуется к формату 09XXXXXXXX. Если канал доставки кодов
// не настроен, подтверждение пропускается.
func (h *Handlers) handleRegisterPhone(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	phone, err := timeutil.NormalizePhone(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "invalid_phone"))
		return
	}

	h.stateManager.SetData(telegramID, "phone", phone)

	if h.otpStore == nil || h.sendOTP == nil {
		h.completeRegistration(ctx, b, chatID, telegramID)
		return
	}

	code, err := h.otpStore.Issue(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, otp.ErrNotConfigured) {
			h.logger.Warn("Failed to issue OTP", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "otp_unavailable"))
		h.completeRegistration(ctx, b, chatID, telegramID)
		return
	}

	if err := h.sendOTP(ctx, phone, code); err != nil {
		h.logger.Warn("Failed to deliver OTP",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "otp_unavailable"))
		h.completeRegistration(ctx, b, chatID, telegramID)
		return
	}

	h.stateManager.SetState(telegramID, state.StateRegisterOTP)
	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "otp_sent"))
}

// handleRegisterOTP проверяет введённый код подтверждения
func (h *Handlers) handleRegisterOTP(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	code := strings.TrimSpace(update.Message.Text)

	ok, err := h.otpStore.Verify(ctx, telegramID, code)
	if err != nil {
		h.logger.Warn("OTP verification failed",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "otp_unavailable"))
		h.completeRegistration(ctx, b, chatID, telegramID)
		return
	}
	if !ok {
		h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "otp_invalid"))
		return
	}

	h.completeRegistration(ctx, b, chatID, telegramID)
}

// completeRegistration создаёт заявку из накопленных данных диалога
// и уведомляет администраторов
func (h *Handlers) completeRegistration(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	data := h.stateManager.GetAllData(telegramID)
	h.stateManager.ClearState(telegramID)

	courseID := data["course_id"]
	fullName := data["full_name"]
	phone := data["phone"]
	if courseID == "" {
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	result, err := h.registrationService.RequestRegistration(ctx, telegramID, fullName, phone, courseID)
	if err != nil {
		h.logger.Error("Failed to request registration",
			zap.Int64("telegram_id", telegramID),
			zap.String("course_id", courseID), zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if !result.Success {
		h.sendMessage(ctx, b, chatID, h.registrationErrorText(ctx, telegramID, result.Error))
		return
	}

	course, err := h.courseService.Course(ctx, courseID)
	courseName := courseID
	if err == nil && course != nil {
		courseName = course.Name
	}

	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "registration_received", courseName))
	h.notifyAdminsOfRegistration(ctx, b, result, courseName)

	if result.Student != nil && !result.Student.ProfileCompleted {
		h.startProfileDialog(ctx, b, chatID, telegramID)
	}
}

// ============================
// Анкета студента
// ============================

// startProfileDialog запускает анкету после первой заявки.
// Каждый шаг можно пропустить, заполненная анкета больше не запрашивается.
func (h *Handlers) startProfileDialog(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	h.stateManager.SetState(telegramID, state.StateProfileGender)
	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "ask_gender"))
}

func (h *Handlers) handleProfileGender(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)
	if text != skipMark {
		h.stateManager.SetData(telegramID, "gender", text)
	}

	h.stateManager.SetState(telegramID, state.StateProfileAge)
	h.sendMessage(ctx, b, update.Message.Chat.ID, h.tr(ctx, telegramID, "ask_age"))
}

func (h *Handlers) handleProfileAge(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if text != skipMark {
		age, err := strconv.Atoi(text)
		if err != nil || age < 10 || age > 100 {
			h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "invalid_age"))
			return
		}
		h.stateManager.SetData(telegramID, "age", strconv.Itoa(age))
	}

	h.stateManager.SetState(telegramID, state.StateProfileResidence)
	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "ask_residence"))
}

func (h *Handlers) handleProfileResidence(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)
	if text != skipMark {
		h.stateManager.SetData(telegramID, "residence", text)
	}

	h.stateManager.SetState(telegramID, state.StateProfileEducation)
	h.sendMessage(ctx, b, update.Message.Chat.ID, h.tr(ctx, telegramID, "ask_education"))
}

func (h *Handlers) handleProfileEducation(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)
	if text != skipMark {
		h.stateManager.SetData(telegramID, "education_level", text)
	}

	h.stateManager.SetState(telegramID, state.StateProfileSpecialization)
	h.sendMessage(ctx, b, update.Message.Chat.ID, h.tr(ctx, telegramID, "ask_specialization"))
}

func (h *Handlers) handleProfileSpecialization(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	if text != skipMark {
		h.stateManager.SetData(telegramID, "specialization", text)
	}

	data := h.stateManager.GetAllData(telegramID)
	h.stateManager.ClearState(telegramID)

	age, _ := strconv.Atoi(data["age"])
	student, err := h.registrationService.CompleteProfile(ctx, telegramID, service.ProfileParams{
		Gender:         data["gender"],
		Age:            age,
		Residence:      data["residence"],
		EducationLevel: data["education_level"],
		Specialization: data["specialization"],
	})
	if err != nil || student == nil {
		h.logger.Error("Failed to complete student profile",
			zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "profile_saved"))
}

// registrationErrorText переводит бизнес-отказ сервиса в локализованный текст
func (h *Handlers) registrationErrorText(ctx context.Context, telegramID int64, serviceError string) string {
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
func (h *Handlers) notifyAdminsOfRegistration(ctx context.Context, b *bot.Bot, result *service.RegistrationResult, courseName string) {
	text := fmt.Sprintf(
		"📥 <b>New registration request</b>\n\n"+
			"👤 %s\n📱 %s\n📚 %s",
		result.Student.FullName,
		timeutil.FormatPhoneDisplay(result.Student.PhoneNumber),
		courseName,
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Approve", callbacks.ApproveRegistration+result.Registration.ID),
			keyboard.Button("🚫 Reject", callbacks.RejectRegistration+result.Registration.ID),
		).
		Build()

	for _, adminID := range h.adminIDs {
		h.sendHTML(ctx, b, adminID, text, kb)
	}
}

// ============================
// Создание курса (администратор)
// ============================

func (h *Handlers) handleCourseName(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	if len([]rune(name)) < 2 {
		h.sendMessage(ctx, b, chatID, "❌ Course name must be at least 2 characters. Try again:")
		return
	}

	h.stateManager.SetData(telegramID, "name", name)
	h.stateManager.SetState(telegramID, state.StateCourseDescription)
	h.sendMessage(ctx, b, chatID, "📝 Send the course description (or \"-\" to skip):")
}

func (h *Handlers) handleCourseDescription(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)
	if text != skipMark {
		h.stateManager.SetData(telegramID, "description", text)
	}

	h.stateManager.SetState(telegramID, state.StateCourseInstructor)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👨‍🏫 Instructor name (or \"-\" to skip):")
}

func (h *Handlers) handleCourseInstructor(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)
	if text != skipMark {
		h.stateManager.SetData(telegramID, "instructor", text)
	}

	h.stateManager.SetState(telegramID, state.StateCourseStartDate)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📅 Start date (YYYY-MM-DD):")
}

func (h *Handlers) handleCourseStartDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if _, err := timeutil.ParseDate(text); err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Invalid date. Use YYYY-MM-DD, e.g. 2026-09-15:")
		return
	}

	h.stateManager.SetData(telegramID, "start_date", text)
	h.stateManager.SetState(telegramID, state.StateCourseEndDate)
	h.sendMessage(ctx, b, chatID, "🏁 End date (YYYY-MM-DD):")
}

func (h *Handlers) handleCourseEndDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	endDate, err := timeutil.ParseDate(text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Invalid date. Use YYYY-MM-DD:")
		return
	}

	startText, _ := h.stateManager.GetData(telegramID, "start_date")
	startDate, err := timeutil.ParseDate(startText)
	if err == nil && !startDate.Before(endDate) {
		h.sendMessage(ctx, b, chatID, "❌ End date must be after the start date. Try again:")
		return
	}

	h.stateManager.SetData(telegramID, "end_date", text)
	h.stateManager.SetState(telegramID, state.StateCoursePrice)
	h.sendMessage(ctx, b, chatID, "💰 Course price in SYP (number):")
}

func (h *Handlers) handleCoursePrice(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	price, err := strconv.ParseFloat(strings.TrimSpace(update.Message.Text), 64)
	if err != nil || price < 0 {
		h.sendMessage(ctx, b, chatID, "❌ Price must be a non-negative number. Try again:")
		return
	}

	h.stateManager.SetData(telegramID, "price", strconv.FormatFloat(price, 'f', -1, 64))
	h.stateManager.SetState(telegramID, state.StateCourseMaxStudents)
	h.sendMessage(ctx, b, chatID, "👥 Maximum number of students:")
}

func (h *Handlers) handleCourseMaxStudents(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	maxStudents, err := strconv.Atoi(strings.TrimSpace(update.Message.Text))
	if err != nil || maxStudents < 1 {
		h.sendMessage(ctx, b, chatID, "❌ Must be a whole number of at least 1. Try again:")
		return
	}

	data := h.stateManager.GetAllData(telegramID)
	h.stateManager.ClearState(telegramID)

	startDate, _ := timeutil.ParseDate(data["start_date"])
	endDate, _ := timeutil.ParseDate(data["end_date"])
	price, _ := strconv.ParseFloat(data["price"], 64)

	result, err := h.courseService.CreateCourse(ctx, service.CreateCourseParams{
		Name:        data["name"],
		Description: data["description"],
		Instructor:  data["instructor"],
		StartDate:   startDate,
		EndDate:     endDate,
		Price:       price,
		MaxStudents: maxStudents,
	})
	if err != nil {
		h.logger.Error("Failed to create course", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}
	if !result.Success {
		h.sendMessage(ctx, b, chatID, "❌ "+result.Error)
		return
	}

	h.sendHTML(ctx, b, chatID,
		"✅ <b>Course created</b>\n\n"+format.FormatCourse(result.Course, model.LanguageEnglish),
		nil)
}

// ============================
// Создание поста (администратор)
// ============================

func (h *Handlers) handlePostContent(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	content := strings.TrimSpace(update.Message.Text)
	if content == "" {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Post text cannot be empty. Try again:")
		return
	}

	h.stateManager.SetData(telegramID, "content", content)
	h.stateManager.SetState(telegramID, state.StatePostImageURL)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🖼 Send the image URL (or \"-\" for a text-only post):")
}

func (h *Handlers) handlePostImageURL(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)
	if text != skipMark {
		h.stateManager.SetData(telegramID, "image_url", text)
	}

	hasImage := text != skipMark
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📘 Facebook", callbacks.ChoosePlatform+string(model.PlatformFacebook)))
	if hasImage {
		kb.Row(keyboard.Button("📷 Instagram", callbacks.ChoosePlatform+string(model.PlatformInstagram))).
			Row(keyboard.Button("📘📷 Both", callbacks.ChoosePlatform+string(model.PlatformBoth)))
	}

	// Состояние не меняется до выбора платформы кнопкой
	h.sendHTML(ctx, b, update.Message.Chat.ID, "📣 Choose the platform:", kb.Build())
}

// handlePostSchedule обрабатывает ввод даты и времени публикации
func (h *Handlers) handlePostSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	parts := strings.Fields(strings.TrimSpace(update.Message.Text))
	if len(parts) != 2 {
		h.sendMessage(ctx, b, chatID, "❌ Use the format YYYY-MM-DD HH:MM, e.g. 2026-09-15 10:30:")
		return
	}

	scheduledAt, err := timeutil.ParseDateTime(parts[0], parts[1])
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Use the format YYYY-MM-DD HH:MM, e.g. 2026-09-15 10:30:")
		return
	}

	data := h.stateManager.GetAllData(telegramID)
	h.stateManager.ClearState(telegramID)

	platform, _ := model.ParsePlatform(data["platform"])
	post, err := h.postService.SchedulePost(ctx, data["content"], scheduledAt, platform, data["image_url"])
	if err != nil {
		h.logger.Error("Failed to schedule post", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	h.sendHTML(ctx, b, chatID, fmt.Sprintf(
		"✅ <b>Post scheduled</b>\n\n%s\n🕐 %s",
		format.PlatformDisplay(post.Platform),
		timeutil.FormatDateTime(post.ScheduledDatetime)), nil)
}

// ============================
// Рассылка (администратор)
// ============================

func (h *Handlers) handleBroadcastText(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	h.stateManager.ClearState(telegramID)
	if text == "" {
		h.sendMessage(ctx, b, chatID, "❌ Broadcast text cannot be empty.")
		return
	}

	result, err := h.notificationService.Broadcast(ctx, text, func(ctx context.Context, recipientID int64, msg string) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: recipientID,
			Text:   msg,
		})
		return err
	})
	if err != nil {
		h.logger.Error("Broadcast failed", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"📣 Broadcast finished: %d delivered, %d failed.", result.Sent, result.Failed))
}

// ============================
// Оплаты и отклонение заявок (администратор)
// ============================

// handlePaymentAmount обрабатывает ввод суммы оплаты.
// Формат: "50000" или "50000 transfer" (способ по умолчанию cash).
func (h *Handlers) handlePaymentAmount(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	parts := strings.Fields(strings.TrimSpace(update.Message.Text))
	if len(parts) == 0 {
		h.sendMessage(ctx, b, chatID, "❌ Send the amount, e.g. 50000 or 50000 transfer:")
		return
	}

	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || amount <= 0 {
		h.sendMessage(ctx, b, chatID, "❌ Amount must be a positive number. Try again:")
		return
	}

	method := model.PaymentMethodCash
	if len(parts) > 1 {
		switch strings.ToLower(parts[1]) {
		case "transfer":
			method = model.PaymentMethodTransfer
		case "cash":
			method = model.PaymentMethodCash
		default:
			method = model.PaymentMethodOther
		}
	}

	registrationID, _ := h.stateManager.GetData(telegramID, "registration_id")
	h.stateManager.ClearState(telegramID)
	if registrationID == "" {
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	result, err := h.registrationService.AddPayment(ctx, registrationID, amount, method, telegramID, "")
	if err != nil {
		h.logger.Error("Failed to add payment",
			zap.String("registration_id", registrationID), zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}
	if !result.Success {
		h.sendMessage(ctx, b, chatID, "❌ "+result.Error)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Payment recorded: %s (total paid %s).",
		format.FormatPrice(amount), format.FormatPrice(result.TotalPaid)))
}

// handleRejectReason обрабатывает ввод причины отклонения заявки
func (h *Handlers) handleRejectReason(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	reason := strings.TrimSpace(update.Message.Text)
	if reason == skipMark {
		reason = ""
	}

	registrationID, _ := h.stateManager.GetData(telegramID, "registration_id")
	h.stateManager.ClearState(telegramID)
	if registrationID == "" {
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	result, err := h.registrationService.Reject(ctx, registrationID, telegramID, reason)
	if err != nil {
		h.logger.Error("Failed to reject registration",
			zap.String("registration_id", registrationID), zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}
	if !result.Success {
		h.sendMessage(ctx, b, chatID, "❌ "+result.Error)
		return
	}

	h.sendMessage(ctx, b, chatID, "🚫 Registration rejected.")
	h.notifyStudentOfDecision(ctx, b, result.Registration, "registration_rejected")
}

// notifyStudentOfDecision уведомляет студента о решении по его заявке
func (h *Handlers) notifyStudentOfDecision(ctx context.Context, b *bot.Bot, registration *model.Registration, key string) {
	entry, err := h.lookupRegistration(ctx, registration)
	if err != nil {
		h.logger.Warn("Failed to notify student of decision",
			zap.String("registration_id", registration.ID), zap.Error(err))
		return
	}

	lang := h.lang(ctx, entry.Student.TelegramID)
	h.sendMessage(ctx, b, entry.Student.TelegramID,
		fmt.Sprintf(locale.T(lang, key), entry.Course.Name))
}

// lookupRegistration находит студента и курс заявки
func (h *Handlers) lookupRegistration(ctx context.Context, registration *model.Registration) (*service.PendingRegistration, error) {
	course, err := h.courseService.Course(ctx, registration.CourseID)
	if err != nil || course == nil {
		return nil, fmt.Errorf("course %s not found", registration.CourseID)
	}

	student, err := h.registrationService.StudentByID(ctx, registration.StudentID)
	if err != nil || student == nil {
		return nil, fmt.Errorf("student %s not found", registration.StudentID)
	}

	return &service.PendingRegistration{
		Registration: registration,
		Student:      student,
		Course:       course,
	}, nil
}
