package locale

import "github.com/damascus-edu/training-center-bot/internal/model"

// Таблицы локализации. Язык по умолчанию — арабский,
// отсутствующий ключ подставляется из арабской таблицы.

var messages = map[model.Language]map[string]string{
	model.LanguageArabic: {
		"welcome":                "👋 أهلاً بك في مركز التدريب!\n\nالأوامر المتاحة:\n/courses — عرض الدورات\n/register — التسجيل في دورة\n/materials — مواد الدورات\n/language — تغيير اللغة\n/help — المساعدة",
		"welcome_back":           "👋 أهلاً بعودتك، %s!",
		"help":                   "📚 الأوامر:\n/start — البداية\n/courses — الدورات المتاحة\n/register — التسجيل في دورة\n/materials — مواد الدورات\n/language — تغيير اللغة\n/cancel — إلغاء العملية الحالية",
		"error_generic":          "❌ حدث خطأ. حاول مرة أخرى لاحقاً.",
		"cancelled":              "تم إلغاء العملية الحالية.",
		"nothing_to_cancel":      "❌ لا توجد عملية جارية لإلغائها.",
		"not_admin":              "❌ هذا الأمر متاح للإدارة فقط.",
		"choose_language":        "🌐 اختر اللغة:",
		"language_set":           "✅ تم تغيير اللغة إلى العربية.",
		"no_courses":             "لا توجد دورات متاحة حالياً.",
		"courses_header":         "📚 الدورات المتاحة:",
		"choose_course":          "اختر الدورة التي تريد التسجيل فيها:",
		"ask_name":               "📝 أدخل اسمك الكامل:",
		"ask_phone":              "📱 أدخل رقم الهاتف:\n\nالصيغ المقبولة:\n• 0912345678\n• +963912345678",
		"invalid_phone":          "❌ الرقم غير صحيح. يجب أن يكون 10 أرقام ويبدأ بـ 09.",
		"ask_gender":             "🚻 ما جنسك؟ (أو \"-\" للتخطي):",
		"ask_age":                "🎂 كم عمرك؟ (أو \"-\" للتخطي):",
		"invalid_age":            "❌ العمر يجب أن يكون رقماً بين 10 و100. حاول مرة أخرى أو \"-\" للتخطي:",
		"ask_residence":          "🏠 أين تسكن؟ (أو \"-\" للتخطي):",
		"ask_education":          "🎓 ما مستواك التعليمي؟ (أو \"-\" للتخطي):",
		"ask_specialization":     "📖 ما اختصاصك؟ (أو \"-\" للتخطي):",
		"profile_saved":          "✅ شكراً! تم حفظ بياناتك.",
		"otp_sent":               "🔐 تم إرسال رمز التحقق. أدخل الرمز المكوّن من 6 أرقام:",
		"otp_invalid":            "❌ الرمز غير صحيح أو منتهي الصلاحية. حاول مرة أخرى أو /cancel.",
		"otp_unavailable":        "⚠️ التحقق من الرقم غير متاح حالياً، سنتابع التسجيل بدونه.",
		"registration_received":  "✅ تم استلام طلب التسجيل في دورة «%s».\nسيتم إعلامك عند الموافقة.",
		"registration_approved":  "🎉 تمت الموافقة على تسجيلك في دورة «%s»!",
		"registration_rejected":  "😔 نعتذر، لم تتم الموافقة على تسجيلك في دورة «%s».",
		"registration_cancelled": "🚫 تم إلغاء تسجيلك.",
		"already_registered":     "❌ أنت مسجل في هذه الدورة بالفعل.",
		"course_full":            "❌ الدورة ممتلئة.",
		"course_not_found":       "❌ الدورة غير موجودة.",
		"course_not_available":   "❌ الدورة غير متاحة للتسجيل.",
		"materials_none":         "لا توجد مواد لهذه الدورة بعد.",
		"materials_header":       "📁 مواد دورة «%s»:",
		"materials_choose":       "اختر الدورة لعرض موادها:",
		"my_profile_empty":       "لم تسجل في أي دورة بعد. استخدم /register.",
		"payment_reminder":       "⚠️ تذكير: تبدأ دورة «%s» قريباً وما زال عليك دفع %.0f.",
		"course_reminder":        "🔔 تذكير: تبدأ دورة «%s» بتاريخ %s.",
	},
	model.LanguageEnglish: {
		"welcome":                "👋 Welcome to the Training Center!\n\nAvailable commands:\n/courses — browse courses\n/register — register for a course\n/materials — course materials\n/language — change language\n/help — help",
		"welcome_back":           "👋 Welcome back, %s!",
		"help":                   "📚 Commands:\n/start — start\n/courses — available courses\n/register — register for a course\n/materials — course materials\n/language — change language\n/cancel — cancel current operation",
		"error_generic":          "❌ Something went wrong. Please try again later.",
		"cancelled":              "Current operation cancelled.",
		"nothing_to_cancel":      "❌ No active operation to cancel.",
		"not_admin":              "❌ This command is for administrators only.",
		"choose_language":        "🌐 Choose a language:",
		"language_set":           "✅ Language switched to English.",
		"no_courses":             "No courses are available right now.",
		"courses_header":         "📚 Available courses:",
		"choose_course":          "Choose the course you want to register for:",
		"ask_name":               "📝 Enter your full name:",
		"ask_phone":              "📱 Enter your phone number:\n\nAccepted formats:\n• 0912345678\n• +963912345678",
		"invalid_phone":          "❌ Invalid number. It must be 10 digits starting with 09.",
		"ask_gender":             "🚻 What is your gender? (or \"-\" to skip):",
		"ask_age":                "🎂 How old are you? (or \"-\" to skip):",
		"invalid_age":            "❌ Age must be a number between 10 and 100. Try again or \"-\" to skip:",
		"ask_residence":          "🏠 Where do you live? (or \"-\" to skip):",
		"ask_education":          "🎓 What is your education level? (or \"-\" to skip):",
		"ask_specialization":     "📖 What is your specialization? (or \"-\" to skip):",
		"profile_saved":          "✅ Thank you! Your details were saved.",
		"otp_sent":               "🔐 A verification code was sent. Enter the 6-digit code:",
		"otp_invalid":            "❌ Wrong or expired code. Try again or /cancel.",
		"otp_unavailable":        "⚠️ Phone verification is unavailable right now, continuing without it.",
		"registration_received":  "✅ Your registration request for \"%s\" was received.\nYou will be notified once it is approved.",
		"registration_approved":  "🎉 Your registration for \"%s\" was approved!",
		"registration_rejected":  "😔 Sorry, your registration for \"%s\" was not approved.",
		"registration_cancelled": "🚫 Your registration was cancelled.",
		"already_registered":     "❌ You are already registered for this course.",
		"course_full":            "❌ The course is full.",
		"course_not_found":       "❌ Course not found.",
		"course_not_available":   "❌ The course is not open for registration.",
		"materials_none":         "No materials for this course yet.",
		"materials_header":       "📁 Materials for \"%s\":",
		"materials_choose":       "Choose a course to see its materials:",
		"my_profile_empty":       "You are not registered for any course yet. Use /register.",
		"payment_reminder":       "⚠️ Reminder: the course \"%s\" starts soon and %.0f is still due.",
		"course_reminder":        "🔔 Reminder: the course \"%s\" starts on %s.",
	},
}

// T возвращает строку для языка, с откатом на арабский
func T(lang model.Language, key string) string {
	if table, ok := messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[model.LanguageArabic][key]; ok {
		return msg
	}
	return key
}
