package googledrive

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Material — файл с материалами курса
type Material struct {
	ID       string
	Name     string
	MimeType string
	Link     string
}

// Adapter хранит материалы курсов в Google Drive
type Adapter struct {
	svc          *drive.Service
	rootFolderID string
	logger       *zap.Logger
}

// New создаёт адаптер с сервисным аккаунтом Google
func New(ctx context.Context, serviceAccountFile, rootFolderID string, logger *zap.Logger) (*Adapter, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(serviceAccountFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Adapter{
		svc:          svc,
		rootFolderID: rootFolderID,
		logger:       logger,
	}, nil
}

// UploadBytes загружает файл в папку и возвращает публичную ссылку.
// Если folderID пустой — загружает в корневую папку центра.
func (a *Adapter) UploadBytes(ctx context.Context, data []byte, fileName, mimeType, folderID string) (string, error) {
	if folderID == "" {
		folderID = a.rootFolderID
	}

	meta := &drive.File{
		Name:    fileName,
		Parents: []string{folderID},
	}

	file, err := a.svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id, webViewLink").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload file %q: %w", fileName, err)
	}

	if err := a.makePublic(ctx, file.Id); err != nil {
		return "", err
	}

	a.logger.Info("Uploaded file to Google Drive",
		zap.String("file", fileName),
		zap.String("folder", folderID))

	return file.WebViewLink, nil
}

// ListFiles получает список файлов в папке
func (a *Adapter) ListFiles(ctx context.Context, folderID string) ([]*Material, error) {
	if folderID == "" {
		folderID = a.rootFolderID
	}

	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	resp, err := a.svc.Files.List().
		Q(query).
		Fields("files(id, name, mimeType, webViewLink)").
		OrderBy("name").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list files in folder %q: %w", folderID, err)
	}

	materials := make([]*Material, 0, len(resp.Files))
	for _, f := range resp.Files {
		materials = append(materials, &Material{
			ID:       f.Id,
			Name:     f.Name,
			MimeType: f.MimeType,
			Link:     f.WebViewLink,
		})
	}
	return materials, nil
}

// CreateFolder создаёт папку для материалов курса и возвращает её ID
func (a *Adapter) CreateFolder(ctx context.Context, name string) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: "application/vnd.google-apps.folder",
		Parents:  []string{a.rootFolderID},
	}

	folder, err := a.svc.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}

	a.logger.Info("Created Drive folder", zap.String("name", name), zap.String("id", folder.Id))
	return folder.Id, nil
}

// makePublic открывает файл на чтение по ссылке
func (a *Adapter) makePublic(ctx context.Context, fileID string) error {
	_, err := a.svc.Permissions.Create(fileID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("make file %q public: %w", fileID, err)
	}
	return nil
}
