package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/ignatzorin/quizgate-bot/internal/logger"
	"github.com/ignatzorin/quizgate-bot/internal/scheduler"
)

// Gateway описывает модерационные вызовы платформы.
type Gateway interface {
	Restrict(chatID, userID int64, until time.Time) error
	Kick(chatID, userID int64) error
	Unban(chatID, userID int64) error
}

// BanStore описывает долговременный учёт ограничений.
type BanStore interface {
	RecordBan(ctx context.Context, userID int64, until time.Time) error
	DeleteBan(ctx context.Context, userID int64) error
	SweepExpired(ctx context.Context) (int, error)
}

// Scheduler ставит отложенные стадии цепочки.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) scheduler.Handle
}

// Config — тайминги цепочки наказания.
type Config struct {
	// MuteDuration — срок мьюта и пауза перед киком.
	MuteDuration time.Duration
	// UnbanDelay — пауза между киком и снятием исключения.
	UnbanDelay time.Duration
	// RecordDeleteDelay — пауза перед удалением записи об ограничении.
	RecordDeleteDelay time.Duration
	// SweepInterval — период фоновой чистки истёкших записей.
	SweepInterval time.Duration
}

// Pipeline выполняет четырёхстадийную цепочку наказания:
// мьют → (спустя срок мьюта) кик → (короткая пауза) разбан → удаление
// записи. Стадии строго последовательны внутри одной цепочки, но
// вызывающий их не ждёт. После первой стадии цепочка работает по
// принципу best effort: ошибка стадии логируется, следующие стадии
// всё равно выполняются.
type Pipeline struct {
	gw    Gateway
	bans  BanStore
	sched Scheduler
	cfg   Config
}

// New создаёт цепочку наказания.
func New(gw Gateway, bans BanStore, sched Scheduler, cfg Config) *Pipeline {
	return &Pipeline{gw: gw, bans: bans, sched: sched, cfg: cfg}
}

// Punish запускает цепочку для пользователя: немедленный мьют с записью
// в хранилище и отложенные стадии. Возвращает ошибку только по жёстким
// гарантиям первой стадии; отложенные стадии ставятся в любом случае.
func (p *Pipeline) Punish(chatID, userID int64) error {
	until := time.Now().Add(p.cfg.MuteDuration)

	var firstErr error
	if err := p.gw.Restrict(chatID, userID, until); err != nil {
		firstErr = fmt.Errorf("moderation: не удалось замьютить пользователя %d: %w", userID, err)
		logger.Log.WithField("user_id", userID).Errorf("moderation: ошибка мьюта: %v", err)
	} else {
		logger.Log.WithField("user_id", userID).WithField("until", until).Info("moderation: пользователь замьючен")
	}

	if err := p.bans.RecordBan(context.Background(), userID, until); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("moderation: не удалось записать ограничение пользователя %d: %w", userID, err)
		}
		logger.Log.WithField("user_id", userID).Errorf("moderation: ошибка записи ограничения: %v", err)
	}

	p.sched.Schedule(p.cfg.MuteDuration, func() {
		p.kickStage(chatID, userID)
	})

	return firstErr
}

// kickStage исключает пользователя из чата по истечении мьюта.
func (p *Pipeline) kickStage(chatID, userID int64) {
	if err := p.gw.Kick(chatID, userID); err != nil {
		logger.Log.WithField("user_id", userID).Errorf("moderation: ошибка кика: %v", err)
	} else {
		logger.Log.WithField("user_id", userID).Info("moderation: пользователь исключён")
	}

	p.sched.Schedule(p.cfg.UnbanDelay, func() {
		p.liftStage(chatID, userID)
	})
}

// liftStage снимает исключение: это кик, а не вечный бан, пользователь
// может вернуться.
func (p *Pipeline) liftStage(chatID, userID int64) {
	if err := p.gw.Unban(chatID, userID); err != nil {
		logger.Log.WithField("user_id", userID).Errorf("moderation: ошибка разбана: %v", err)
	} else {
		logger.Log.WithField("user_id", userID).Info("moderation: исключение снято")
	}

	p.sched.Schedule(p.cfg.RecordDeleteDelay, func() {
		p.forgetStage(userID)
	})
}

// forgetStage удаляет запись об ограничении: при повторном входе
// пользователь получит обычную проверку.
func (p *Pipeline) forgetStage(userID int64) {
	if err := p.bans.DeleteBan(context.Background(), userID); err != nil {
		logger.Log.WithField("user_id", userID).Errorf("moderation: ошибка удаления записи: %v", err)
		return
	}
	logger.Log.WithField("user_id", userID).Info("moderation: запись об ограничении удалена")
}

// RunSweeper периодически удаляет истёкшие записи об ограничениях —
// страховка для цепочек, прерванных рестартом процесса. Блокирует до
// отмены контекста.
func (p *Pipeline) RunSweeper(ctx context.Context) {
	p.sweep(ctx)

	ticker := time.NewTicker(p.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *Pipeline) sweep(ctx context.Context) {
	count, err := p.bans.SweepExpired(ctx)
	if err != nil {
		logger.Log.Errorf("moderation: ошибка чистки истёкших ограничений: %v", err)
		return
	}
	if count > 0 {
		logger.Log.Infof("moderation: удалено %d истёкших ограничений", count)
	}
}
