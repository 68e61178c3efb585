package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Все даты в системе живут в часовом поясе центра (по умолчанию Asia/Damascus).
// В MongoDB даты хранятся в UTC, конвертация здесь.

const defaultTimezone = "Asia/Damascus"

var location = mustLoadLocation(defaultTimezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("failed to load timezone " + name + ": " + err.Error())
	}
	return loc
}

// SetLocation устанавливает часовой пояс центра.
// Вызывается один раз при старте, до запуска горутин.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", name, err)
	}
	location = loc
	return nil
}

// Location возвращает текущий часовой пояс центра
func Location() *time.Location {
	return location
}

// Now возвращает текущее время в часовом поясе центра
func Now() time.Time {
	return time.Now().In(location)
}

// Today возвращает текущую дату (полночь) в часовом поясе центра
func Today() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)
}

// ParseDate парсит дату строго в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// ParseTime парсит время строго в 24-часовом формате HH:MM.
// Возвращает час и минуту.
func ParseTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseDateTime собирает дату и время в момент в часовом поясе центра
func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, location), nil
}

// IsPastOrNow проверяет наступил ли запланированный момент.
// Сравнение идёт с точностью до минуты: проверка постов запускается
// раз в несколько минут и не должна пропускать пост из-за секунд.
func IsPastOrNow(scheduled time.Time) bool {
	nowMin := Now().Truncate(time.Minute)
	schedMin := scheduled.Truncate(time.Minute)
	return !nowMin.Before(schedMin)
}

// FormatDateTime форматирует момент для показа пользователю (YYYY-MM-DD HH:MM)
func FormatDateTime(t time.Time) string {
	return t.In(location).Format("2006-01-02 15:04")
}

// FormatDate форматирует только дату (YYYY-MM-DD)
func FormatDate(t time.Time) string {
	return t.In(location).Format("2006-01-02")
}

// ToUTC конвертирует момент в UTC для хранения в MongoDB
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FromUTC конвертирует момент из MongoDB (UTC) в часовой пояс центра
func FromUTC(t time.Time) time.Time {
	return t.In(location)
}
