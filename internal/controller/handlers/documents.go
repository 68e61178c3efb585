package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/damascus-edu/training-center-bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// maxMaterialSize ограничивает размер загружаемого материала (20 МБ,
// лимит Bot API на скачивание файлов)
const maxMaterialSize = 20 << 20

// HandleDocument обрабатывает загруженный администратором файл
// в диалоге загрузки материалов
func (h *Handlers) HandleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Document == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(telegramID) != state.StateUploadFile {
		return
	}
	if !h.isAdmin(telegramID) {
		return
	}

	courseID, _ := h.stateManager.GetData(telegramID, "upload_course_id")
	h.stateManager.ClearState(telegramID)
	if courseID == "" {
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	doc := update.Message.Document
	if doc.FileSize > maxMaterialSize {
		h.sendMessage(ctx, b, chatID, "❌ File is too large, the limit is 20 MB.")
		return
	}

	data, err := h.downloadFile(ctx, b, doc.FileID)
	if err != nil {
		h.logger.Error("Failed to download document",
			zap.String("file_id", doc.FileID), zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	mimeType := doc.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	result, err := h.materialService.UploadToCourses(ctx, []string{courseID}, data, doc.FileName, mimeType)
	if err != nil {
		h.logger.Error("Failed to upload material", zap.Error(err))
		h.sendError(ctx, b, chatID, telegramID)
		return
	}

	if errText, failed := result.Errors[courseID]; failed {
		h.sendMessage(ctx, b, chatID, "❌ Upload failed: "+errText)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Material uploaded: %s\n🔗 %s", doc.FileName, result.Links[courseID]))
}

// downloadFile скачивает файл с серверов Telegram
func (h *Handlers) downloadFile(ctx context.Context, b *bot.Bot, fileID string) ([]byte, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	link := b.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMaterialSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file body: %w", err)
	}
	if len(data) > maxMaterialSize {
		return nil, fmt.Errorf("file exceeds %d bytes", maxMaterialSize)
	}
	return data, nil
}
