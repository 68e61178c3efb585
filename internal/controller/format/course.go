package format

import (
	"fmt"
	"strings"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
)

// FormatPrice форматирует цену в сирийских лирах
func FormatPrice(price float64) string {
	if price == float64(int64(price)) {
		return fmt.Sprintf("%.0f SYP", price)
	}
	return fmt.Sprintf("%.2f SYP", price)
}

// FormatCourse форматирует карточку курса для отображения
func FormatCourse(course *model.Course, lang model.Language) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📚 <b>%s</b>\n", course.Name)
	if course.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", course.Description)
	}
	b.WriteString("\n")

	if lang == model.LanguageEnglish {
		if course.Instructor != "" {
			fmt.Fprintf(&b, "👨‍🏫 Instructor: %s\n", course.Instructor)
		}
		fmt.Fprintf(&b, "📅 Starts: %s\n", timeutil.FormatDate(course.StartDate))
		fmt.Fprintf(&b, "🏁 Ends: %s\n", timeutil.FormatDate(course.EndDate))
		fmt.Fprintf(&b, "💰 Price: %s\n", FormatPrice(course.Price))
		fmt.Fprintf(&b, "👥 Seats: %d\n", course.MaxStudents)
	} else {
		if course.Instructor != "" {
			fmt.Fprintf(&b, "👨‍🏫 المدرب: %s\n", course.Instructor)
		}
		fmt.Fprintf(&b, "📅 تاريخ البدء: %s\n", timeutil.FormatDate(course.StartDate))
		fmt.Fprintf(&b, "🏁 تاريخ الانتهاء: %s\n", timeutil.FormatDate(course.EndDate))
		fmt.Fprintf(&b, "💰 السعر: %s\n", FormatPrice(course.Price))
		fmt.Fprintf(&b, "👥 عدد المقاعد: %d\n", course.MaxStudents)
	}

	return b.String()
}

// FormatCourseLine форматирует курс одной строкой для списков
func FormatCourseLine(course *model.Course) string {
	return fmt.Sprintf("%s %s (%s)",
		CourseStatusDisplay(course.Status).Emoji,
		course.Name,
		timeutil.FormatDate(course.StartDate))
}
