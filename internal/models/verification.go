package models

import (
	"time"
)

// PassedUser — пользователь, прошедший проверку. Наличие записи означает,
// что проверка больше никогда не предлагается.
type PassedUser struct {
	UserID   int64     `db:"user_id"`
	PassedAt time.Time `db:"passed_at"`
}

// BannedUser — действующее ограничение. Запись с banned_until в будущем
// означает, что пользователь сейчас замьючен.
type BannedUser struct {
	UserID      int64     `db:"user_id"`
	BannedUntil time.Time `db:"banned_until"`
	CreatedAt   time.Time `db:"created_at"`
}

// ActivePoll связывает идентификатор опроса Telegram с сессией проверки,
// когда квиз доставляется в личные сообщения.
type ActivePoll struct {
	PollID    string    `db:"poll_id"`
	UserID    int64     `db:"user_id"`
	ChatID    int64     `db:"chat_id"`
	MessageID int       `db:"message_id"`
	ThreadID  *int      `db:"thread_id"`
	CreatedAt time.Time `db:"created_at"`
}
