package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const calendarID = "primary"

// maxListResults с запасом покрывает семестр занятий одного предмета.
const maxListResults = 250

// Client - календарь одного пользователя. Создаётся на каждый запрос
// из его сохранённого токена.
type Client struct {
	svc *calendar.Service
}

func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("создание клиента календаря: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ListRange возвращает события в [from, to), развёрнутые по повторениям
// и отсортированные по началу.
func (c *Client) ListRange(ctx context.Context, from, to time.Time) ([]*calendar.Event, error) {
	res, err := c.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxListResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("список событий: %w", err)
	}
	return res.Items, nil
}

// ListUpcoming возвращает события начиная с from, по возрастанию начала.
func (c *Client) ListUpcoming(ctx context.Context, from time.Time) ([]*calendar.Event, error) {
	res, err := c.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxListResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("список будущих событий: %w", err)
	}
	return res.Items, nil
}

func (c *Client) Get(ctx context.Context, eventID string) (*calendar.Event, error) {
	ev, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("событие %s: %w", eventID, err)
	}
	return ev, nil
}

func (c *Client) Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	created, err := c.svc.Events.Insert(calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("создание события: %w", err)
	}
	return created, nil
}

// Update пишет событие целиком. SupportsAttachments обязателен, иначе
// API молча выбрасывает вложения.
func (c *Client) Update(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	updated, err := c.svc.Events.Update(calendarID, ev.Id, ev).
		SupportsAttachments(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("обновление события %s: %w", ev.Id, err)
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("удаление события %s: %w", eventID, err)
	}
	return nil
}
