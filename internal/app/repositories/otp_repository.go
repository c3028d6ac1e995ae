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

// IOTPRepository defines email OTP database operations
type IOTPRepository interface {
	Create(ctx context.Context, otp *models.EmailOTP) error
	Consume(ctx context.Context, email, code string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OTPRepository handles database operations for email OTP codes
type OTPRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new OTP for the email, replacing any prior code
func (r *OTPRepository) Create(ctx context.Context, otp *models.EmailOTP) error {
	delSQL, delArgs, err := r.sb.Delete("email_otps").
		Where(squirrel.Eq{"email": otp.Email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete otp query: %w", err)
	}
	if _, err := r.db.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("error replacing prior otp: %w", err)
	}

	sql, args, err := r.sb.Insert("email_otps").
		Columns("email", "otp", "expiry_date").
		Values(otp.Email, otp.OTP, otp.ExpiryDate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create otp query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&otp.ID, &otp.CreatedAt); err != nil {
		return fmt.Errorf("error creating otp: %w", err)
	}

	return nil
}

// Consume atomically deletes a matching unexpired OTP. Returns
// ErrInvalidOTP when the code is wrong, expired, or already used;
// the conditional delete means a code can only ever succeed once.
func (r *OTPRepository) Consume(ctx context.Context, email, code string) error {
	sql, args, err := r.sb.Delete("email_otps").
		Where(squirrel.Eq{"email": email, "otp": code}).
		Where(squirrel.Expr("expiry_date > now()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build consume otp query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrInvalidOTP
		}
		return fmt.Errorf("error consuming otp: %w", err)
	}

	return nil
}

// DeleteExpired removes expired OTP rows
func (r *OTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("email_otps").
		Where(squirrel.Expr("expiry_date < now()")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired otps query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired otps: %w", err)
	}

	removed := cmdTag.RowsAffected()
	if removed > 0 {
		log.Debug().Int64("removed", removed).Msg("Expired OTP codes cleaned up")
	}
	return removed, nil
}
