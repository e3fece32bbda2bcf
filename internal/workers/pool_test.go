package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunExecutesAllJobs(t *testing.T) {
	var done int64
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) error {
			atomic.AddInt64(&done, 1)
			return nil
		}
	}

	failed := New(4).Run(context.Background(), jobs, nil)

	if failed != 0 {
		t.Errorf("неожиданные ошибки: %d", failed)
	}
	if done != 20 {
		t.Errorf("выполнено %d задач вместо 20", done)
	}
}

func TestRunCountsFailures(t *testing.T) {
	boom := errors.New("boom")
	jobs := []Job{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error { return boom },
	}

	var mu sync.Mutex
	got := map[int]error{}
	failed := New(2).Run(context.Background(), jobs, func(r Result) {
		mu.Lock()
		got[r.Index] = r.Err
		mu.Unlock()
	})

	if failed != 2 {
		t.Errorf("failed = %d, ожидалось 2", failed)
	}
	if got[0] != nil || got[1] == nil || got[2] == nil {
		t.Errorf("колбэки получили не те ошибки: %v", got)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	var cur, max int64
	jobs := make([]Job, 30)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) error {
			n := atomic.AddInt64(&cur, 1)
			for {
				m := atomic.LoadInt64(&max)
				if n <= m || atomic.CompareAndSwapInt64(&max, m, n) {
					break
				}
			}
			atomic.AddInt64(&cur, -1)
			return nil
		}
	}

	New(3).Run(context.Background(), jobs, nil)

	if max > 3 {
		t.Errorf("одновременно работало %d горутин при лимите 3", max)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var done int64
	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) error {
			atomic.AddInt64(&done, 1)
			return nil
		}
	}

	New(1).Run(ctx, jobs, nil)

	if done == 10 {
		t.Error("после отмены контекста все задачи не должны запускаться")
	}
}
