package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// BanRepository отвечает за работу с таблицей banned_users.
type BanRepository struct {
	db *sqlx.DB
}

// NewBanRepository создаёт экземпляр репозитория.
func NewBanRepository(db *sqlx.DB) *BanRepository {
	return &BanRepository{db: db}
}

// RecordBan записывает ограничение с моментом его истечения. Повторная
// запись для того же пользователя обновляет срок.
func (r *BanRepository) RecordBan(ctx context.Context, userID int64, until time.Time) error {
	query := `
		INSERT INTO banned_users (user_id, banned_until)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET banned_until = EXCLUDED.banned_until
	`
	if _, err := r.db.ExecContext(ctx, query, userID, until); err != nil {
		return fmt.Errorf("ban repository: record ban %w", err)
	}

	return nil
}

// IsBanned проверяет, действует ли для пользователя ограничение сейчас.
func (r *BanRepository) IsBanned(ctx context.Context, userID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM banned_users WHERE user_id = $1 AND banned_until > NOW()`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return false, fmt.Errorf("ban repository: is banned %w", err)
	}

	return count > 0, nil
}

// DeleteBan удаляет запись об ограничении. Отсутствие записи не ошибка.
func (r *BanRepository) DeleteBan(ctx context.Context, userID int64) error {
	query := `DELETE FROM banned_users WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("ban repository: delete ban %w", err)
	}

	return nil
}

// SweepExpired удаляет записи с истёкшим сроком и возвращает их количество.
func (r *BanRepository) SweepExpired(ctx context.Context) (int, error) {
	query := `DELETE FROM banned_users WHERE banned_until <= NOW()`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("ban repository: sweep expired %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ban repository: sweep expired rows affected %w", err)
	}

	return int(affected), nil
}

// CountActive возвращает количество действующих ограничений.
func (r *BanRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM banned_users WHERE banned_until > NOW()`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("ban repository: count active %w", err)
	}

	return count, nil
}
