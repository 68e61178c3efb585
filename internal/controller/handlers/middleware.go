package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin проверяет что команду вызвал администратор.
// Возвращает false и отвечает отказом, если нет.
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	telegramID := update.Message.From.ID
	if !h.isAdmin(telegramID) {
		h.logger.Warn("Admin command from non-admin user",
			zap.Int64("telegram_id", telegramID),
			zap.String("text", update.Message.Text))
		h.sendMessage(ctx, b, update.Message.Chat.ID, h.tr(ctx, telegramID, "not_admin"))
		return false
	}

	return true
}
