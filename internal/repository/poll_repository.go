package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/quizgate-bot/internal/models"
)

// ErrPollNotFound возвращается, когда активный опрос не найден.
var ErrPollNotFound = errors.New("active poll not found")

// PollRepository отвечает за работу с таблицей active_polls.
type PollRepository struct {
	db *sqlx.DB
}

// NewPollRepository создаёт экземпляр репозитория.
func NewPollRepository(db *sqlx.DB) *PollRepository {
	return &PollRepository{db: db}
}

// Add регистрирует активный опрос. На один poll_id существует не более
// одной записи.
func (r *PollRepository) Add(ctx context.Context, poll *models.ActivePoll) error {
	query := `
		INSERT INTO active_polls (poll_id, user_id, chat_id, message_id, thread_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (poll_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			chat_id = EXCLUDED.chat_id,
			message_id = EXCLUDED.message_id,
			thread_id = EXCLUDED.thread_id
	`
	if _, err := r.db.ExecContext(
		ctx, query,
		poll.PollID, poll.UserID, poll.ChatID, poll.MessageID, poll.ThreadID,
	); err != nil {
		return fmt.Errorf("poll repository: add %w", err)
	}

	return nil
}

// Get возвращает активный опрос по идентификатору.
func (r *PollRepository) Get(ctx context.Context, pollID string) (*models.ActivePoll, error) {
	var poll models.ActivePoll
	query := `
		SELECT poll_id, user_id, chat_id, message_id, thread_id, created_at
		FROM active_polls
		WHERE poll_id = $1
	`
	if err := r.db.GetContext(ctx, &poll, query, pollID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("poll repository: get %w", err)
	}

	return &poll, nil
}

// Remove удаляет запись об опросе. Отсутствие записи не ошибка.
func (r *PollRepository) Remove(ctx context.Context, pollID string) error {
	query := `DELETE FROM active_polls WHERE poll_id = $1`
	if _, err := r.db.ExecContext(ctx, query, pollID); err != nil {
		return fmt.Errorf("poll repository: remove %w", err)
	}

	return nil
}
