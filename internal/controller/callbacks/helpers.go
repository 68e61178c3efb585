package callbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/damascus-edu/training-center-bot/internal/locale"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Helper functions для всех callback handlers

// answerCallback отвечает на callback query (без alert)
func answerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// answerAlert отвечает на callback query с alert (всплывающее окно)
func answerAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// callbackArg извлекает аргумент из callback data после префикса.
// Например: callbackArg("stdview_course:abc", ViewCourse) -> "abc"
func callbackArg(data, prefix string) string {
	return strings.TrimPrefix(data, prefix)
}

// chatID возвращает идентификатор чата callback-а.
// Для callback из inaccessible message чат совпадает с отправителем.
func chatID(callback *models.CallbackQuery) int64 {
	if callback.Message.Message != nil {
		return callback.Message.Message.Chat.ID
	}
	return callback.From.ID
}

// lang возвращает язык пользователя
func (h *Handler) lang(ctx context.Context, telegramID int64) model.Language {
	return h.NotificationService.Language(ctx, telegramID)
}

// tr возвращает локализованную строку для пользователя
func (h *Handler) tr(ctx context.Context, telegramID int64, key string, args ...interface{}) string {
	text := locale.T(h.lang(ctx, telegramID), key)
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handler) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.Logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML отправляет сообщение с HTML-разметкой и опциональной клавиатурой
func (h *Handler) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.Logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// requireAdmin проверяет права администратора, отвечая alert-ом при отказе
func (h *Handler) requireAdmin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) bool {
	if !h.IsAdmin(callback.From.ID) {
		h.Logger.Warn("Admin callback from non-admin user",
			zap.Int64("telegram_id", callback.From.ID),
			zap.String("data", callback.Data))
		answerAlert(ctx, b, callback.ID, h.tr(ctx, callback.From.ID, "not_admin"))
		return false
	}
	return true
}
