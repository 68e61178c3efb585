package locale

import (
	"strings"
	"testing"

	"github.com/damascus-edu/training-center-bot/internal/model"
)

func TestTBothLanguages(t *testing.T) {
	ar := T(model.LanguageArabic, "welcome")
	en := T(model.LanguageEnglish, "welcome")
	if ar == "" || en == "" {
		t.Fatal("welcome must exist in both languages")
	}
	if ar == en {
		t.Fatalf("translations must differ: %q", ar)
	}
}

func TestTFallsBackToArabic(t *testing.T) {
	// Несуществующий язык падает на арабский
	got := T(model.Language("fr"), "welcome")
	if got != T(model.LanguageArabic, "welcome") {
		t.Fatalf("fallback = %q", got)
	}
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	if got := T(model.LanguageArabic, "no_such_key"); got != "no_such_key" {
		t.Fatalf("unknown key = %q", got)
	}
}

func TestFormatVerbsConsistent(t *testing.T) {
	// Ключи с подстановками должны иметь одинаковые verbs в обоих языках
	keys := []string{"welcome_back", "registration_received", "payment_reminder", "course_reminder"}
	for _, key := range keys {
		ar := strings.Count(T(model.LanguageArabic, key), "%")
		en := strings.Count(T(model.LanguageEnglish, key), "%")
		if ar == 0 {
			t.Fatalf("%s: arabic message lost its format verbs", key)
		}
		if ar != en {
			t.Fatalf("%s: verb count differs: ar=%d en=%d", key, ar, en)
		}
	}
}
