package gcal

import (
	"context"

	"google.golang.org/api/calendar/v3"

	"homework-bot/internal/workers"
)

// Размер пачки и ширина пула подобраны под лимиты Calendar API: пачки по
// 50 запросов, не больше 5 одновременно.
const (
	batchSize  = 50
	batchWidth = 5
)

// BatchProgress зовётся после каждой пачки с числом уже обработанных
// элементов, чтобы бот мог обновлять прогресс в чате.
type BatchProgress func(done, total int)

// InsertBatch создаёт события пачками через пул воркеров. Возвращает
// число событий, которые создать не удалось.
func (c *Client) InsertBatch(ctx context.Context, events []*calendar.Event, progress BatchProgress) int {
	failed := 0
	for off := 0; off < len(events); off += batchSize {
		end := off + batchSize
		if end > len(events) {
			end = len(events)
		}
		chunk := events[off:end]

		jobs := make([]workers.Job, len(chunk))
		for i, ev := range chunk {
			ev := ev
			jobs[i] = func(ctx context.Context) error {
				_, err := c.Insert(ctx, ev)
				return err
			}
		}
		failed += workers.New(batchWidth).Run(ctx, jobs, nil)

		if progress != nil {
			progress(end, len(events))
		}
	}
	return failed
}

// DeleteBatch удаляет события пачками. Возвращает число событий,
// которые удалить не удалось.
func (c *Client) DeleteBatch(ctx context.Context, eventIDs []string, progress BatchProgress) int {
	failed := 0
	for off := 0; off < len(eventIDs); off += batchSize {
		end := off + batchSize
		if end > len(eventIDs) {
			end = len(eventIDs)
		}
		chunk := eventIDs[off:end]

		jobs := make([]workers.Job, len(chunk))
		for i, id := range chunk {
			id := id
			jobs[i] = func(ctx context.Context) error {
				return c.Delete(ctx, id)
			}
		}
		failed += workers.New(batchWidth).Run(ctx, jobs, nil)

		if progress != nil {
			progress(end, len(eventIDs))
		}
	}
	return failed
}
