package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

// ITokenRepository defines refresh token database operations
type ITokenRepository interface {
	CreateToken(ctx context.Context, token *models.RefreshToken) error
	GetTokenByValue(ctx context.Context, tokenValue string) (*models.RefreshToken, error)
	RevokeToken(ctx context.Context, tokenValue string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token *models.RefreshToken) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("user_id", "token", "expiry_date").
		Values(token.UserID, token.Token, token.ExpiryDate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&token.ID, &token.CreatedAt); err != nil {
		return fmt.Errorf("error creating refresh token: %w", err)
	}

	return nil
}

// GetTokenByValue retrieves a refresh token and validates its state
func (r *TokenRepository) GetTokenByValue(ctx context.Context, tokenValue string) (*models.RefreshToken, error) {
	sql, args, err := r.sb.Select("id, user_id, token, expiry_date, revoked, created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": tokenValue}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	var token models.RefreshToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.ExpiryDate,
		&token.Revoked,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error getting refresh token: %w", err)
	}

	if token.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if token.IsExpired() {
		return nil, apperrors.ErrTokenExpired
	}

	return &token, nil
}

// RevokeToken marks a refresh token as revoked
func (r *TokenRepository) RevokeToken(ctx context.Context, tokenValue string) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"token": tokenValue}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllUserTokens revokes every active refresh token of a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"user_id": userID, "revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke user tokens query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking user refresh tokens: %w", err)
	}

	return nil
}

// CleanupExpiredTokens deletes expired and revoked refresh tokens
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Or{
			squirrel.Expr("expiry_date < now()"),
			squirrel.Eq{"revoked": true},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up refresh tokens: %w", err)
	}

	removed := cmdTag.RowsAffected()
	if removed > 0 {
		log.Debug().Int64("removed", removed).Msg("Expired refresh tokens cleaned up")
	}
	return removed, nil
}
