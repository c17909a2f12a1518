package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"stockroom/internal/models"
)

type PasswordResetRepository interface {
	Create(pr *models.PasswordReset) error
	GetLatestByUser(userID int) (*models.PasswordReset, error)
	// ConsumeAndSetPassword marks the entry used and stores the new password
	// hash in one transaction. It reports false and changes nothing when the
	// entry was already used or does not belong to the user.
	ConsumeAndSetPassword(resetID, userID int, passwordHash string) (bool, error)
}

type passwordResetRepository struct {
	DB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

func (r *passwordResetRepository) Create(pr *models.PasswordReset) error {
	const q = `
		INSERT INTO password_resets (user_id, code, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := r.DB.QueryRow(q, pr.UserID, pr.Code, pr.CreatedAt, pr.ExpiresAt, pr.Used).Scan(&pr.ID); err != nil {
		return fmt.Errorf("create password reset: %w", err)
	}
	return nil
}

func (r *passwordResetRepository) GetLatestByUser(userID int) (*models.PasswordReset, error) {
	const q = `
		SELECT id, user_id, code, created_at, expires_at, used
		FROM password_resets
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	pr := &models.PasswordReset{}
	err := r.DB.QueryRow(q, userID).Scan(&pr.ID, &pr.UserID, &pr.Code, &pr.CreatedAt, &pr.ExpiresAt, &pr.Used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest password reset: %w", err)
	}
	return pr, nil
}

func (r *passwordResetRepository) ConsumeAndSetPassword(resetID, userID int, passwordHash string) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("consume password reset: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE password_resets SET used = TRUE
		WHERE id = $1 AND user_id = $2 AND used = FALSE
	`, resetID, userID)
	if err != nil {
		return false, fmt.Errorf("consume password reset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume password reset: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := updatePassword(tx, userID, passwordHash); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("consume password reset: %w", err)
	}
	return true, nil
}
