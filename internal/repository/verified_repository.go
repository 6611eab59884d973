package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// VerifiedRepository отвечает за работу с таблицей passed_users.
type VerifiedRepository struct {
	db *sqlx.DB
}

// NewVerifiedRepository создаёт экземпляр репозитория.
func NewVerifiedRepository(db *sqlx.DB) *VerifiedRepository {
	return &VerifiedRepository{db: db}
}

// MarkPassed помечает пользователя прошедшим проверку. Повторный вызов
// для уже прошедшего пользователя не является ошибкой.
func (r *VerifiedRepository) MarkPassed(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO passed_users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("verified repository: mark passed %w", err)
	}

	return nil
}

// IsPassed проверяет, прошёл ли пользователь проверку ранее.
func (r *VerifiedRepository) IsPassed(ctx context.Context, userID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM passed_users WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return false, fmt.Errorf("verified repository: is passed %w", err)
	}

	return count > 0, nil
}

// CountPassed возвращает количество прошедших проверку пользователей.
func (r *VerifiedRepository) CountPassed(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM passed_users`); err != nil {
		return 0, fmt.Errorf("verified repository: count passed %w", err)
	}

	return count, nil
}
