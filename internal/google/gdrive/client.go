package gdrive

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// BotFolderName - папка в Drive пользователя, куда складываются все
// файлы, загруженные через бота.
const BotFolderName = "ДЗ от Телеграм Бота"

const folderMimeType = "application/vnd.google-apps.folder"

type Client struct {
	svc *drive.Service
}

func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("создание клиента Drive: %w", err)
	}
	return &Client{svc: svc}, nil
}

// EnsureFolder находит папку бота или создаёт её.
func (c *Client) EnsureFolder(ctx context.Context) (string, error) {
	query := fmt.Sprintf("mimeType = '%s' and name = '%s' and trashed = false",
		folderMimeType, BotFolderName)
	res, err := c.svc.Files.List().Q(query).Fields("files(id)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("поиск папки бота: %w", err)
	}
	if len(res.Files) > 0 {
		return res.Files[0].Id, nil
	}

	folder, err := c.svc.Files.Create(&drive.File{
		Name:     BotFolderName,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("создание папки бота: %w", err)
	}
	return folder.Id, nil
}

// UploadedFile - результат загрузки, то, что нужно для вложения в событие.
type UploadedFile struct {
	FileID   string
	Name     string
	MimeType string
	ViewLink string
}

// Upload кладёт файл в папку parentID и открывает доступ по ссылке,
// иначе одногруппники не смогут открыть вложение из чужого календаря.
func (c *Client) Upload(ctx context.Context, parentID, name string, data []byte) (*UploadedFile, error) {
	file, err := c.svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{parentID},
	}).
		Media(bytes.NewReader(data)).
		Fields("id, name, mimeType, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("загрузка файла %s: %w", name, err)
	}

	_, err = c.svc.Permissions.Create(file.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("открытие доступа к файлу %s: %w", name, err)
	}

	return &UploadedFile{
		FileID:   file.Id,
		Name:     file.Name,
		MimeType: file.MimeType,
		ViewLink: file.WebViewLink,
	}, nil
}

// Download скачивает содержимое файла. Удалённый файл не считается
// ошибкой вызывающего кода, поэтому 404 возвращается как есть.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	res, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("скачивание файла %s: %w", fileID, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение файла %s: %w", fileID, err)
	}
	return data, nil
}

func (c *Client) Delete(ctx context.Context, fileID string) error {
	err := c.svc.Files.Delete(fileID).Context(ctx).Do()
	if err != nil {
		// Файл мог быть удалён руками, это не мешает снять вложение.
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
			return nil
		}
		return fmt.Errorf("удаление файла %s: %w", fileID, err)
	}
	return nil
}
