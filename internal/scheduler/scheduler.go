package scheduler

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/ignatzorin/quizgate-bot/internal/logger"
)

// Handle — отложенное действие, которое можно отменить до срабатывания.
type Handle interface {
	// Cancel снимает действие с таймера. Возвращает false, если действие
	// уже сработало или было отменено раньше; в этом случае вызов ничего
	// не делает. Отмена носит рекомендательный характер: уже запущенное
	// действие она не прерывает.
	Cancel() bool
}

// Scheduler запускает действия один раз после задержки.
type Scheduler struct{}

// New создаёт планировщик.
func New() *Scheduler {
	return &Scheduler{}
}

type handle struct {
	mu    sync.Mutex
	timer *time.Timer
	done  bool
}

// Schedule ставит действие на выполнение не раньше, чем через delay.
// Паника внутри действия гасится и логируется, процесс не падает.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) Handle {
	h := &handle{}

	h.timer = time.AfterFunc(delay, func() {
		h.mu.Lock()
		if h.done {
			h.mu.Unlock()
			return
		}
		h.done = true
		h.mu.Unlock()

		defer func() {
			if r := recover(); r != nil {
				if logger.Log != nil {
					logger.Log.Errorf("scheduler: panic в отложенном действии: %v\n%s", r, debug.Stack())
				}
			}
		}()
		fn()
	})

	return h
}

func (h *handle) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return false
	}
	h.done = true
	h.timer.Stop()
	return true
}
