package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/dberrors"
)

// IMembershipRepository defines community membership database operations
type IMembershipRepository interface {
	Add(ctx context.Context, communityID, userID int64, role models.MemberRole) error
	Remove(ctx context.Context, communityID, userID int64) error
	ListByCommunity(ctx context.Context, communityID int64) ([]*models.CommunityMember, error)
	IsAdmin(ctx context.Context, communityID, userID int64) (bool, error)
	CountByCommunity(ctx context.Context, communityID int64) (int, error)
	AdminIDs(ctx context.Context, communityID int64) ([]int64, error)
}

// MembershipRepository handles database operations for community members
type MembershipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add inserts a membership row. Returns ErrAlreadyMember when the
// user is already a member of the community.
func (r *MembershipRepository) Add(ctx context.Context, communityID, userID int64, role models.MemberRole) error {
	sql, args, err := r.sb.Insert("community_members").
		Columns("community_id", "user_id", "role").
		Values(communityID, userID, role).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add member query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyMember
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCommunityNotFound
		}
		return fmt.Errorf("error adding community member: %w", err)
	}

	return nil
}

// Remove deletes a membership row. Returns ErrMembershipNotFound when
// the user is not a member.
func (r *MembershipRepository) Remove(ctx context.Context, communityID, userID int64) error {
	sql, args, err := r.sb.Delete("community_members").
		Where(squirrel.Eq{"community_id": communityID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove member query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing community member: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}

	return nil
}

// ListByCommunity returns the community's members with user details,
// admins first and then by case-insensitive name.
func (r *MembershipRepository) ListByCommunity(ctx context.Context, communityID int64) ([]*models.CommunityMember, error) {
	sql, args, err := r.sb.Select("m.id, m.community_id, m.user_id, m.role, m.joined_at, u.id, u.name, u.email, u.image").
		From("community_members m").
		Join("users u ON u.id = m.user_id").
		Where(squirrel.Eq{"m.community_id": communityID}).
		OrderBy("CASE WHEN m.role = 'admin' THEN 0 ELSE 1 END", "LOWER(u.name)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list members query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing community members: %w", err)
	}
	defer rows.Close()

	var members []*models.CommunityMember
	for rows.Next() {
		var member models.CommunityMember
		var user models.User
		err := rows.Scan(
			&member.ID,
			&member.CommunityID,
			&member.UserID,
			&member.Role,
			&member.JoinedAt,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Image,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning member row: %w", err)
		}
		member.User = &user
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

// IsAdmin reports whether the user holds the admin role in the community
func (r *MembershipRepository) IsAdmin(ctx context.Context, communityID, userID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("community_members").
		Where(squirrel.Eq{
			"community_id": communityID,
			"user_id":      userID,
			"role":         models.MemberRoleAdmin,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build is admin query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("error checking admin role: %w", err)
	}
	return true, nil
}

// CountByCommunity returns the number of members in the community
func (r *MembershipRepository) CountByCommunity(ctx context.Context, communityID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("community_members").
		Where(squirrel.Eq{"community_id": communityID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build member count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting community members: %w", err)
	}
	return count, nil
}

// AdminIDs returns the user ids of the community's admins
func (r *MembershipRepository) AdminIDs(ctx context.Context, communityID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("community_members").
		Where(squirrel.Eq{
			"community_id": communityID,
			"role":         models.MemberRoleAdmin,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build admin ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing admin ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning admin id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin id rows: %w", err)
	}

	return ids, nil
}
