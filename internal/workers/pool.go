package workers

import (
	"context"
	"sync"
)

// Pool выполняет пачку задач с ограничением на число одновременных горутин.
// Используется для массовых операций с календарём, чтобы не упереться в
// квоты Google API.
type Pool struct {
	size int
}

func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

// Job - одна единица работы. Возвращённая ошибка попадает в Result.
type Job func(ctx context.Context) error

// Result связывает индекс задачи с её ошибкой (nil при успехе).
type Result struct {
	Index int
	Err   error
}

// Run запускает все задачи и вызывает onDone по завершении каждой.
// Колбэк вызывается из рабочих горутин, порядок не гарантируется.
// Возвращает число задач, завершившихся с ошибкой.
func (p *Pool) Run(ctx context.Context, jobs []Job, onDone func(Result)) int {
	sem := make(chan struct{}, p.size)

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return failed
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()

			err := job(ctx)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			if onDone != nil {
				onDone(Result{Index: i, Err: err})
			}
		}(i, job)
	}

	wg.Wait()
	return failed
}
