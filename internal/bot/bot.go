package bot

import (
	"context"

	"github.com/ignatzorin/quizgate-bot/internal/goroutine"
	"github.com/ignatzorin/quizgate-bot/internal/logger"
	"github.com/ignatzorin/quizgate-bot/internal/telegram"
)

// Machine описывает обработчики событий, по одному на вариант.
type Machine interface {
	HandleJoin(ctx context.Context, ev *telegram.JoinEvent) error
	HandleLanguageChoice(ctx context.Context, ev *telegram.LanguageChoiceEvent) error
	HandleQuizAnswer(ctx context.Context, ev *telegram.QuizAnswerEvent) error
	HandleStartCommand(ctx context.Context, ev *telegram.StartCommandEvent) error
	HandlePollAnswer(ctx context.Context, ev *telegram.PollAnswerEvent) error
	HandlePollClosed(ctx context.Context, ev *telegram.PollClosedEvent) error
	HandleGroupMessage(ctx context.Context, ev *telegram.GroupMessageEvent) error
}

// Bot читает обновления long polling и раздаёт события машине проверки.
type Bot struct {
	gw      *telegram.Gateway
	machine Machine
}

// New создаёт диспетчер обновлений.
func New(gw *telegram.Gateway, machine Machine) *Bot {
	return &Bot{gw: gw, machine: machine}
}

// Run блокирует до отмены контекста. Каждое обновление обрабатывается в
// своей горутине с подавлением panic: упавший обработчик не валит процесс
// и не блокирует чужие события.
func (b *Bot) Run(ctx context.Context) {
	updates := b.gw.Updates()
	logger.Log.Info("bot: long polling запущен")

	for {
		select {
		case <-ctx.Done():
			b.gw.StopUpdates()
			logger.Log.Info("bot: long polling остановлен")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			event := telegram.MapUpdate(update)
			if event == nil {
				continue
			}

			updateID := update.UpdateID
			goroutine.SafeGo(func() {
				b.dispatch(ctx, updateID, event)
			})
		}
	}
}

// dispatch вызывает обработчик варианта события. Ошибка логируется с
// идентификатором обновления и не прерывает обработку остальных.
func (b *Bot) dispatch(ctx context.Context, updateID int, event *telegram.Event) {
	var err error

	switch {
	case event.Join != nil:
		err = b.machine.HandleJoin(ctx, event.Join)
	case event.LanguageChoice != nil:
		err = b.machine.HandleLanguageChoice(ctx, event.LanguageChoice)
	case event.QuizAnswer != nil:
		err = b.machine.HandleQuizAnswer(ctx, event.QuizAnswer)
	case event.StartCommand != nil:
		err = b.machine.HandleStartCommand(ctx, event.StartCommand)
	case event.PollAnswer != nil:
		err = b.machine.HandlePollAnswer(ctx, event.PollAnswer)
	case event.PollClosed != nil:
		err = b.machine.HandlePollClosed(ctx, event.PollClosed)
	case event.GroupMessage != nil:
		err = b.machine.HandleGroupMessage(ctx, event.GroupMessage)
	}

	if err != nil {
		logger.Log.WithField("update_id", updateID).Errorf("bot: ошибка обработки события: %v", err)
	}
}
