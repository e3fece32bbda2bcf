package gsheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// UsageRow - строка журнала запросов к GPT.
type UsageRow struct {
	TelegramID       int64
	Time             time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Subject          string
	HomeworkText     string
	Pages            string
	Summary          string
}

type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient подключается к таблице от имени сервисного аккаунта.
// Таблица должна быть расшарена на его email.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("создание клиента Sheets: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// AppendUsage дописывает строку в конец журнала.
func (c *Client) AppendUsage(ctx context.Context, row UsageRow) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			row.TelegramID,
			row.Time.Format("2006-01-02 15:04:05"),
			row.PromptTokens,
			row.CompletionTokens,
			row.TotalTokens,
			row.Subject,
			row.HomeworkText,
			row.Pages,
			row.Summary,
		}},
	}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, "A1", values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("запись в журнал: %w", err)
	}
	return nil
}
