package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

// IVerificationTokenRepository defines email verification token operations
type IVerificationTokenRepository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	Consume(ctx context.Context, tokenValue string) (int64, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

// VerificationTokenRepository handles database operations for email
// verification tokens
type VerificationTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db *pgxpool.Pool) *VerificationTokenRepository {
	return &VerificationTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new verification token, replacing any prior token
// for the same user
func (r *VerificationTokenRepository) Create(ctx context.Context, token *models.VerificationToken) error {
	if err := r.DeleteByUserID(ctx, token.UserID); err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("verification_tokens").
		Columns("user_id", "token", "expiry_date").
		Values(token.UserID, token.Token, token.ExpiryDate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create verification token query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&token.ID, &token.CreatedAt); err != nil {
		return fmt.Errorf("error creating verification token: %w", err)
	}

	return nil
}

// Consume atomically deletes an unexpired token and returns its user id.
// The conditional delete means concurrent consumers cannot both succeed.
func (r *VerificationTokenRepository) Consume(ctx context.Context, tokenValue string) (int64, error) {
	sql, args, err := r.sb.Delete("verification_tokens").
		Where(squirrel.Eq{"token": tokenValue}).
		Where(squirrel.Expr("expiry_date > now()")).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build consume verification token query: %w", err)
	}

	var userID int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrInvalidVerificationToken
		}
		return 0, fmt.Errorf("error consuming verification token: %w", err)
	}

	return userID, nil
}

// DeleteByUserID removes the user's verification tokens
func (r *VerificationTokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("verification_tokens").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete verification tokens query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting verification tokens: %w", err)
	}

	return nil
}
