package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/dberrors"
)

// FollowedCommunity is a community annotated with follow metadata and
// the aggregate counts shown in the followed-communities feed.
type FollowedCommunity struct {
	models.Community
	FollowedAt         time.Time
	MemberCount        int
	UpcomingEventCount int
}

// IFollowRepository defines community follow database operations
type IFollowRepository interface {
	Add(ctx context.Context, userID, communityID int64) error
	Remove(ctx context.Context, userID, communityID int64) error
	ListFollowed(ctx context.Context, userID int64, limit int) ([]*FollowedCommunity, error)
	FollowerIDs(ctx context.Context, communityID int64) ([]int64, error)
	CountByCommunity(ctx context.Context, communityID int64) (int, error)
}

// FollowRepository handles database operations for community follows
type FollowRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add inserts a follow row. Returns ErrAlreadyFollowing when the user
// already follows the community.
func (r *FollowRepository) Add(ctx context.Context, userID, communityID int64) error {
	sql, args, err := r.sb.Insert("follows").
		Columns("user_id", "community_id").
		Values(userID, communityID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add follow query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyFollowing
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCommunityNotFound
		}
		return fmt.Errorf("error adding follow: %w", err)
	}

	return nil
}

// Remove deletes a follow row. Returns ErrFollowNotFound when the user
// does not follow the community.
func (r *FollowRepository) Remove(ctx context.Context, userID, communityID int64) error {
	sql, args, err := r.sb.Delete("follows").
		Where(squirrel.Eq{"user_id": userID, "community_id": communityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove follow query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing follow: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFollowNotFound
	}

	return nil
}

// ListFollowed returns the approved communities the user follows, most
// recently followed first, with member and upcoming-event counts.
func (r *FollowRepository) ListFollowed(ctx context.Context, userID int64, limit int) ([]*FollowedCommunity, error) {
	sql, args, err := r.sb.Select(communityColumns+", f.created_at",
		"(SELECT COUNT(*) FROM community_members m WHERE m.community_id = c.id)",
		"(SELECT COUNT(*) FROM events e WHERE e.community_id = c.id AND e.event_date >= CURRENT_DATE)").
		From("follows f").
		Join("communities c ON c.id = f.community_id").
		Where(squirrel.Eq{
			"f.user_id": userID,
			"c.status":  models.CommunityStatusApproved,
		}).
		OrderBy("f.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build followed communities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing followed communities: %w", err)
	}
	defer rows.Close()

	var followed []*FollowedCommunity
	for rows.Next() {
		var fc FollowedCommunity
		err := rows.Scan(
			&fc.ID,
			&fc.Name,
			&fc.Handle,
			&fc.Description,
			&fc.AvatarURL,
			&fc.CoverURL,
			&fc.Status,
			&fc.CreatorID,
			&fc.CreatedAt,
			&fc.UpdatedAt,
			&fc.FollowedAt,
			&fc.MemberCount,
			&fc.UpcomingEventCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning followed community row: %w", err)
		}
		followed = append(followed, &fc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating followed community rows: %w", err)
	}

	return followed, nil
}

// FollowerIDs returns the user ids following the community
func (r *FollowRepository) FollowerIDs(ctx context.Context, communityID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("follows").
		Where(squirrel.Eq{"community_id": communityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build follower ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing follower ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning follower id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follower id rows: %w", err)
	}

	return ids, nil
}

// CountByCommunity returns the number of followers of the community
func (r *FollowRepository) CountByCommunity(ctx context.Context, communityID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("follows").
		Where(squirrel.Eq{"community_id": communityID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build follower count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting followers: %w", err)
	}
	return count, nil
}
