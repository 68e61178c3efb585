package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================
// Константы задают форматы callback data, используемые по всему боту

// Навигация и язык
const (
	NavNoop = "nav_noop"

	CourseListPage      = "nav_courses_page:" // nav_courses_page:<page>
	AdminCourseListPage = "nav_cmgr_page:"    // nav_cmgr_page:<page>

	LangArabic  = "lang_ar"
	LangEnglish = "lang_en"

	NotifToggle    = "notif_toggle"
	ProfileRefresh = "profile_refresh"
)

// CoursesPerPage — размер страницы списков курсов
const CoursesPerPage = 5

// Студент: просмотр и регистрация
const (
	ViewCourse         = "stdview_course:"    // stdview_course:<course_id>
	ViewMaterials      = "stdview_materials:" // stdview_materials:<course_id>
	RegisterCourse     = "stdreg_course:"     // stdreg_course:<course_id>
	CancelRegistration = "stdreg_cancel:"     // stdreg_cancel:<registration_id>
)

// Администратор: посты
const (
	ChoosePlatform  = "postplat_" // postplat_facebook / postplat_instagram / postplat_both
	TriggerPostsNow = "admin_trigger_posts"
)

// Администратор: заявки, курсы, оплаты
const (
	PendingList         = "regadm_list"
	ApproveRegistration = "regadm_approve:" // regadm_approve:<registration_id>
	RejectRegistration  = "regadm_reject:"  // regadm_reject:<registration_id>

	CreateCourse    = "cmgr_create"
	ListCourses     = "cmgr_list"
	ManageCourse    = "cmgr_course:" // cmgr_course:<course_id>
	SetCourseStatus = "cmgr_status:" // cmgr_status:<course_id>:<status>
	DeleteCourse    = "cmgr_delete:" // cmgr_delete:<course_id>
	UploadToCourse  = "cmgr_upload:" // cmgr_upload:<course_id>
	CourseRoster    = "cmgr_roster:" // cmgr_roster:<course_id>

	AddPayment     = "pay_add:"     // pay_add:<registration_id>
	PaymentHistory = "pay_history:" // pay_history:<registration_id>
)

// route распределяет callback query по соответствующим обработчикам
func (h *Handler) route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	data := callback.Data

	switch {
	// ===== Навигация =====
	case data == NavNoop:
		answerCallback(ctx, b, callback.ID, "")
	case strings.HasPrefix(data, CourseListPage):
		h.handleCourseListPage(ctx, b, callback)
	case strings.HasPrefix(data, AdminCourseListPage):
		h.handleAdminCourseListPage(ctx, b, callback)

	// ===== Язык и уведомления =====
	case data == LangArabic || data == LangEnglish:
		h.handleSetLanguage(ctx, b, callback)
	case data == ProfileRefresh:
		h.handleProfileRefresh(ctx, b, callback)
	case data == NotifToggle:
		h.handleToggleNotifications(ctx, b, callback)

	// ===== Студент =====
	case strings.HasPrefix(data, ViewCourse):
		h.handleViewCourse(ctx, b, callback)
	case strings.HasPrefix(data, ViewMaterials):
		h.handleViewMaterials(ctx, b, callback)
	case strings.HasPrefix(data, CancelRegistration):
		h.handleCancelRegistration(ctx, b, callback)
	case strings.HasPrefix(data, RegisterCourse):
		h.handleRegisterCourse(ctx, b, callback)

	// ===== Администратор: посты =====
	case strings.HasPrefix(data, ChoosePlatform):
		h.handleChoosePlatform(ctx, b, callback)
	case data == TriggerPostsNow:
		h.handleTriggerPosts(ctx, b, callback)

	// ===== Администратор: заявки =====
	case data == PendingList:
		h.handlePendingList(ctx, b, callback)
	case strings.HasPrefix(data, ApproveRegistration):
		h.handleApproveRegistration(ctx, b, callback)
	case strings.HasPrefix(data, RejectRegistration):
		h.handleRejectRegistration(ctx, b, callback)

	// ===== Администратор: курсы =====
	case data == CreateCourse:
		h.handleCreateCourse(ctx, b, callback)
	case data == ListCourses:
		h.handleListCourses(ctx, b, callback)
	case strings.HasPrefix(data, ManageCourse):
		h.handleManageCourse(ctx, b, callback)
	case strings.HasPrefix(data, SetCourseStatus):
		h.handleSetCourseStatus(ctx, b, callback)
	case strings.HasPrefix(data, DeleteCourse):
		h.handleDeleteCourse(ctx, b, callback)
	case strings.HasPrefix(data, UploadToCourse):
		h.handleUploadToCourse(ctx, b, callback)
	case strings.HasPrefix(data, CourseRoster):
		h.handleCourseRoster(ctx, b, callback)

	// ===== Администратор: оплаты =====
	case strings.HasPrefix(data, AddPayment):
		h.handleAddPayment(ctx, b, callback)
	case strings.HasPrefix(data, PaymentHistory):
		h.handlePaymentHistory(ctx, b, callback)

	// ===== Неизвестный callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		answerCallback(ctx, b, callback.ID, "❌")
	}
}
