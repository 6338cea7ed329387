// Package scheduler запускает фоновые задачи сервиса с заданными интервалами.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Task периодическая задача. Контекст отменяется при остановке планировщика.
type Task func(ctx context.Context)

// Scheduler позволяет запускать задачи с определенной периодичностью.
type Scheduler struct {
	mu            sync.Mutex
	wg            sync.WaitGroup
	cancellations []context.CancelFunc
}

// New создает новый объект типа Scheduler.
func New() *Scheduler {
	return &Scheduler{
		cancellations: make([]context.CancelFunc, 0),
	}
}

// Add запускает задачу task с периодом interval до отмены ctx или вызова Stop.
func (s *Scheduler) Add(ctx context.Context, name string, task Task, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancellations = append(s.cancellations, cancel)
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Debug().Str("task", name).Msg("Task stopped")
				return
			case <-ticker.C:
				task(ctx)
			}
		}
	}()
}

// Stop останавливает все задачи и дожидается их завершения.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for _, cancel := range s.cancellations {
		cancel()
	}
	s.cancellations = s.cancellations[:0]
	s.mu.Unlock()

	s.wg.Wait()
}
