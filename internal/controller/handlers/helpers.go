package handlers

import (
	"context"
	"fmt"

	"github.com/damascus-edu/training-center-bot/internal/locale"
	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// lang возвращает язык пользователя (по умолчанию арабский)
func (h *Handlers) lang(ctx context.Context, telegramID int64) model.Language {
	return h.notificationService.Language(ctx, telegramID)
}

// tr возвращает локализованную строку для пользователя
func (h *Handlers) tr(ctx context.Context, telegramID int64, key string, args ...interface{}) string {
	text := locale.T(h.lang(ctx, telegramID), key)
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML отправляет сообщение с HTML-разметкой и опциональной клавиатурой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendError отправляет локализованное сообщение об общей ошибке
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	h.sendMessage(ctx, b, chatID, h.tr(ctx, telegramID, "error_generic"))
}
