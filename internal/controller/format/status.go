package format

import "github.com/damascus-edu/training-center-bot/internal/model"

// StatusDisplay представляет отображение статуса: emoji и подпись на двух языках
type StatusDisplay struct {
	Emoji   string
	Arabic  string
	English string
}

// Text возвращает подпись статуса на языке пользователя
func (d StatusDisplay) Text(lang model.Language) string {
	if lang == model.LanguageEnglish {
		return d.English
	}
	return d.Arabic
}

// Label возвращает emoji и подпись одной строкой
func (d StatusDisplay) Label(lang model.Language) string {
	return d.Emoji + " " + d.Text(lang)
}

// RegistrationStatusDisplay возвращает отображение статуса заявки
func RegistrationStatusDisplay(status model.RegistrationStatus) StatusDisplay {
	displays := map[model.RegistrationStatus]StatusDisplay{
		model.RegistrationStatusPending:   {"⏳", "قيد المراجعة", "Pending"},
		model.RegistrationStatusApproved:  {"✅", "مقبول", "Approved"},
		model.RegistrationStatusRejected:  {"🚫", "مرفوض", "Rejected"},
		model.RegistrationStatusCancelled: {"❌", "ملغي", "Cancelled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "غير معروف", "Unknown"}
}

// PaymentStatusDisplay возвращает отображение статуса оплаты
func PaymentStatusDisplay(status model.PaymentStatus) StatusDisplay {
	displays := map[model.PaymentStatus]StatusDisplay{
		model.PaymentStatusUnpaid:  {"🔴", "غير مدفوع", "Unpaid"},
		model.PaymentStatusPartial: {"🟡", "مدفوع جزئياً", "Partially paid"},
		model.PaymentStatusPaid:    {"🟢", "مدفوع", "Paid"},
	}

	if display, ok := displays[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "غير معروف", "Unknown"}
}

// CourseStatusDisplay возвращает отображение статуса курса
func CourseStatusDisplay(status model.CourseStatus) StatusDisplay {
	displays := map[model.CourseStatus]StatusDisplay{
		model.CourseStatusDraft:     {"📝", "مسودة", "Draft"},
		model.CourseStatusPublished: {"🟢", "متاح للتسجيل", "Open"},
		model.CourseStatusOngoing:   {"▶️", "جارٍ حالياً", "Ongoing"},
		model.CourseStatusCompleted: {"✔️", "منتهي", "Completed"},
		model.CourseStatusCancelled: {"❌", "ملغي", "Cancelled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "غير معروف", "Unknown"}
}

// PlatformDisplay возвращает отображение платформы поста
func PlatformDisplay(platform model.Platform) string {
	switch platform {
	case model.PlatformFacebook:
		return "📘 Facebook"
	case model.PlatformInstagram:
		return "📷 Instagram"
	default:
		return "📘📷 Facebook + Instagram"
	}
}
