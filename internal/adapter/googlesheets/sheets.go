package googlesheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Колонки таблицы постов (0-based):
// content | image_url | date (YYYY-MM-DD) | time (HH:MM) | platform | status
// В колонку F пишется статус "published", в колонку G — заметка об ошибке.
const (
	colContent = iota
	colImageURL
	colDate
	colTime
	colPlatform
	colStatus
	columnsRequired = 6
)

// Adapter читает запланированные посты из Google Sheets
type Adapter struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger
}

// New создаёт адаптер с сервисным аккаунтом Google
func New(ctx context.Context, serviceAccountFile, spreadsheetID, sheetName string, logger *zap.Logger) (*Adapter, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(serviceAccountFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Adapter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}, nil
}

// GetScheduledPosts читает посты из таблицы.
// Возвращаются только строки со статусом pending; строки с нехваткой колонок
// или с нераспознаваемой датой пропускаются с записью в лог.
func (a *Adapter) GetScheduledPosts(ctx context.Context) ([]*model.ScheduledPost, error) {
	readRange := fmt.Sprintf("%s!A2:F", a.sheetName)
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read scheduled posts: %w", err)
	}

	posts := a.postsFromRows(resp.Values)
	a.logger.Info("Fetched pending posts from Google Sheets", zap.Int("count", len(posts)))
	return posts, nil
}

// postsFromRows парсит строки таблицы в посты.
// Нумерация строк начинается с 2: первая строка таблицы — заголовок.
func (a *Adapter) postsFromRows(rows [][]interface{}) []*model.ScheduledPost {
	var posts []*model.ScheduledPost

	for i, row := range rows {
		rowIndex := i + 2

		if len(row) < columnsRequired {
			a.logger.Warn("Row has insufficient columns, skipping", zap.Int("row", rowIndex))
			continue
		}

		status := strings.ToLower(cellString(row, colStatus))
		if status != "pending" {
			continue
		}

		content := cellString(row, colContent)
		imageURL := cellString(row, colImageURL)

		scheduledAt, err := timeutil.ParseDateTime(cellString(row, colDate), cellString(row, colTime))
		if err != nil {
			a.logger.Error("Failed to parse row datetime, skipping",
				zap.Int("row", rowIndex), zap.Error(err))
			continue
		}

		platform, recognized := model.ParsePlatform(cellString(row, colPlatform))
		if !recognized {
			a.logger.Warn("Unknown platform, defaulting to both",
				zap.Int("row", rowIndex), zap.String("value", cellString(row, colPlatform)))
		}

		posts = append(posts, model.NewScheduledPost(content, scheduledAt, platform, imageURL, rowIndex))
	}

	return posts
}

// MarkPublished помечает строку как опубликованную (колонка F).
// Повторная пометка уже опубликованной строки безопасна.
func (a *Adapter) MarkPublished(ctx context.Context, rowIndex int) error {
	writeRange := fmt.Sprintf("%s!F%d", a.sheetName, rowIndex)
	_, err := a.svc.Spreadsheets.Values.Update(a.spreadsheetID, writeRange, &sheets.ValueRange{
		Values: [][]interface{}{{"published"}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("mark row %d published: %w", rowIndex, err)
	}

	a.logger.Info("Marked row as published", zap.Int("row", rowIndex))
	return nil
}

// AddErrorNote записывает сообщение об ошибке рядом со строкой (колонка G)
func (a *Adapter) AddErrorNote(ctx context.Context, rowIndex int, message string) error {
	writeRange := fmt.Sprintf("%s!G%d", a.sheetName, rowIndex)
	_, err := a.svc.Spreadsheets.Values.Update(a.spreadsheetID, writeRange, &sheets.ValueRange{
		Values: [][]interface{}{{message}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add error note to row %d: %w", rowIndex, err)
	}
	return nil
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, ok := row[idx].(string)
	if !ok {
		return strings.TrimSpace(fmt.Sprint(row[idx]))
	}
	return strings.TrimSpace(s)
}
