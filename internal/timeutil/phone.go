package timeutil

import (
	"errors"
	"regexp"
	"strings"
)

// Валидация сирийских номеров телефона.
// Принимаемые формы: 0912345678, 912345678, +963912345678, 00963912345678, 963912345678.
// Нормализованная форма всегда 09XXXXXXXX.

var (
	ErrPhoneEmpty         = errors.New("phone number is required")
	ErrPhoneInvalidChars  = errors.New("phone number must contain digits only")
	ErrPhoneInvalidFormat = errors.New("phone number must be 10 digits starting with 09")
)

var (
	phoneStripRe = regexp.MustCompile(`[\s\-\(\)]`)
	phoneCharsRe = regexp.MustCompile(`^[\d\+]+$`)
	phoneFinalRe = regexp.MustCompile(`^09\d{8}$`)
)

// NormalizePhone проверяет и нормализует сирийский номер телефона
func NormalizePhone(phone string) (string, error) {
	cleaned := phoneStripRe.ReplaceAllString(strings.TrimSpace(phone), "")

	if cleaned == "" {
		return "", ErrPhoneEmpty
	}

	if !phoneCharsRe.MatchString(cleaned) {
		return "", ErrPhoneInvalidChars
	}

	// Убираем код страны
	switch {
	case strings.HasPrefix(cleaned, "+963"):
		cleaned = "0" + cleaned[4:]
	case strings.HasPrefix(cleaned, "00963"):
		cleaned = "0" + cleaned[5:]
	case strings.HasPrefix(cleaned, "963"):
		cleaned = "0" + cleaned[3:]
	}

	// Добавляем ведущий ноль если его нет
	if len(cleaned) == 9 && cleaned[0] != '0' {
		cleaned = "0" + cleaned
	}

	if !phoneFinalRe.MatchString(cleaned) {
		return "", ErrPhoneInvalidFormat
	}

	return cleaned, nil
}

// FormatPhoneDisplay форматирует номер для показа: 0912 345 678
func FormatPhoneDisplay(phone string) string {
	if len(phone) == 10 {
		return phone[:4] + " " + phone[4:7] + " " + phone[7:]
	}
	return phone
}
