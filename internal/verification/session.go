package verification

import (
	"github.com/ignatzorin/quizgate-bot/internal/quiz"
	"github.com/ignatzorin/quizgate-bot/internal/scheduler"
)

// Phase — фаза жизненного цикла сессии проверки.
type Phase int

const (
	// PhaseAwaitingLanguage — ожидаем выбор языка.
	PhaseAwaitingLanguage Phase = iota + 1
	// PhaseAwaitingAnswer — ожидаем ответ на квиз.
	PhaseAwaitingAnswer
	// PhaseCompleted — проверка пройдена.
	PhaseCompleted
	// PhaseFailed — проверка провалена или истекло время.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingLanguage:
		return "awaiting_language"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Session — состояние проверки одного пользователя в одном чате. Живёт
// только в памяти: при рестарте процесса пользователь получит новую
// проверку при следующем событии. Все поля мутируются только под
// пользовательским замком стора.
type Session struct {
	ID       string
	UserID   int64
	UserName string
	ChatID   int64
	ThreadID int

	Phase    Phase
	Language string

	// Challenge выбирается при старте квиза и дальше не меняется.
	Challenge *quiz.Challenge

	// Идентификаторы сообщений для зачистки при завершении.
	OriginalMessageID int
	BotMessageIDs     []int
	UserMessageIDs    []int

	// Напоминание об остатке времени, если было отправлено.
	WarnMessageID int

	// Доставка квиза в личные сообщения.
	PMChatID          int64
	PollID            string
	PollMessageID     int
	GreetingMessageID int

	// Текущий таймер фазы. Любой переход снимает его и ставит новый.
	timer     scheduler.Handle
	warnTimer scheduler.Handle
}

// resolved сообщает, достигла ли сессия терминальной фазы.
func (s *Session) resolved() bool {
	return s.Phase == PhaseCompleted || s.Phase == PhaseFailed
}

// cancelTimers снимает таймеры фазы. Отмена рекомендательная: уже
// сработавший обработчик сам перепроверит фазу.
func (s *Session) cancelTimers() {
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
	if s.warnTimer != nil {
		s.warnTimer.Cancel()
		s.warnTimer = nil
	}
}

// noticeChatID возвращает чат, в котором идёт квиз: личный при доставке
// через опрос, иначе групповой.
func (s *Session) noticeChatID() int64 {
	if s.PMChatID != 0 {
		return s.PMChatID
	}
	return s.ChatID
}

// noticeThreadID возвращает тред для уведомлений; в личном чате тредов нет.
func (s *Session) noticeThreadID() int {
	if s.PMChatID != 0 {
		return 0
	}
	return s.ThreadID
}
