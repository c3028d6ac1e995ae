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
	"github.com/namansharma28/gravitas-backend/internal/pkg/dberrors"
)

// UserCommunity is a community annotated with the caller's membership role.
// Role is empty when the user is the creator but not a member.
type UserCommunity struct {
	models.Community
	Role models.MemberRole
}

// ICommunityRepository defines community database operations
type ICommunityRepository interface {
	Create(ctx context.Context, community *models.Community) (int64, error)
	GetByHandle(ctx context.Context, handle string) (*models.Community, error)
	GetByID(ctx context.Context, id int64) (*models.Community, error)
	ListByStatus(ctx context.Context, status models.CommunityStatus) ([]*models.Community, error)
	UpdateStatus(ctx context.Context, id int64, status models.CommunityStatus) error
	ListAdministered(ctx context.Context, userID int64) ([]*models.Community, error)
	ListForUser(ctx context.Context, userID int64) ([]*UserCommunity, error)
}

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const communityColumns = "c.id, c.name, c.handle, c.description, c.avatar_url, c.cover_url, c.status, c.creator_id, c.created_at, c.updated_at"

func scanCommunity(row pgx.Row) (*models.Community, error) {
	var community models.Community
	err := row.Scan(
		&community.ID,
		&community.Name,
		&community.Handle,
		&community.Description,
		&community.AvatarURL,
		&community.CoverURL,
		&community.Status,
		&community.CreatorID,
		&community.CreatedAt,
		&community.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error scanning community row: %w", err)
	}
	return &community, nil
}

// Create inserts a new community in pending status and returns its id
func (r *CommunityRepository) Create(ctx context.Context, community *models.Community) (int64, error) {
	sql, args, err := r.sb.Insert("communities").
		Columns("name", "handle", "description", "avatar_url", "cover_url", "status", "creator_id").
		Values(community.Name, community.Handle, community.Description, community.AvatarURL, community.CoverURL, community.Status, community.CreatorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create community query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "communities_handle_key") {
			return 0, apperrors.ErrHandleAlreadyExists
		}
		return 0, fmt.Errorf("error creating community: %w", err)
	}

	return id, nil
}

// GetByHandle retrieves a community by handle, with the creator joined
func (r *CommunityRepository) GetByHandle(ctx context.Context, handle string) (*models.Community, error) {
	sql, args, err := r.sb.Select(communityColumns+", u.id, u.name, u.email, u.image").
		From("communities c").
		Join("users u ON u.id = c.creator_id").
		Where(squirrel.Eq{"c.handle": handle}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get community query: %w", err)
	}

	var community models.Community
	var creator models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&community.ID,
		&community.Name,
		&community.Handle,
		&community.Description,
		&community.AvatarURL,
		&community.CoverURL,
		&community.Status,
		&community.CreatorID,
		&community.CreatedAt,
		&community.UpdatedAt,
		&creator.ID,
		&creator.Name,
		&creator.Email,
		&creator.Image,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error getting community by handle: %w", err)
	}

	community.Creator = &creator
	return &community, nil
}

// GetByID retrieves a community by id
func (r *CommunityRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	sql, args, err := r.sb.Select(communityColumns).
		From("communities c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get community query: %w", err)
	}

	return scanCommunity(r.db.QueryRow(ctx, sql, args...))
}

// ListByStatus returns communities with the given status, newest first
func (r *CommunityRepository) ListByStatus(ctx context.Context, status models.CommunityStatus) ([]*models.Community, error) {
	sql, args, err := r.sb.Select(communityColumns).
		From("communities c").
		Where(squirrel.Eq{"c.status": status}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list communities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing communities: %w", err)
	}
	defer rows.Close()

	var communities []*models.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, err
		}
		communities = append(communities, community)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating community rows: %w", err)
	}

	return communities, nil
}

// UpdateStatus moves a pending community to the given status. Returns
// ErrCommunityNotPending when the community exists but is no longer pending.
func (r *CommunityRepository) UpdateStatus(ctx context.Context, id int64, status models.CommunityStatus) error {
	sql, args, err := r.sb.Update("communities").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": models.CommunityStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating community status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrCommunityNotFound
		}
		return apperrors.ErrCommunityNotPending
	}

	log.Debug().Int64("communityId", id).Str("status", string(status)).Msg("Community status updated")
	return nil
}

func (r *CommunityRepository) exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("communities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build community exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking community existence: %w", err)
	}
	return true, nil
}

// ListAdministered returns approved communities where the user holds the admin role
func (r *CommunityRepository) ListAdministered(ctx context.Context, userID int64) ([]*models.Community, error) {
	sql, args, err := r.sb.Select(communityColumns).
		From("communities c").
		Join("community_members m ON m.community_id = c.id").
		Where(squirrel.Eq{
			"m.user_id": userID,
			"m.role":    models.MemberRoleAdmin,
			"c.status":  models.CommunityStatusApproved,
		}).
		OrderBy("LOWER(c.name)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build administered communities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing administered communities: %w", err)
	}
	defer rows.Close()

	var communities []*models.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, err
		}
		communities = append(communities, community)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating community rows: %w", err)
	}

	return communities, nil
}

// ListForUser returns the communities the user belongs to or created.
// Rejected communities are visible only to their creator. Results sort
// admin memberships first, then by case-insensitive name.
func (r *CommunityRepository) ListForUser(ctx context.Context, userID int64) ([]*UserCommunity, error) {
	sql, args, err := r.sb.Select(communityColumns + ", COALESCE(m.role, '')").
		From("communities c").
		LeftJoin("community_members m ON m.community_id = c.id AND m.user_id = ?", userID).
		Where(squirrel.Or{
			squirrel.Expr("m.user_id IS NOT NULL"),
			squirrel.Eq{"c.creator_id": userID},
		}).
		Where(squirrel.Or{
			squirrel.NotEq{"c.status": models.CommunityStatusRejected},
			squirrel.Eq{"c.creator_id": userID},
		}).
		OrderBy("CASE WHEN m.role = 'admin' THEN 0 ELSE 1 END", "LOWER(c.name)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user communities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing user communities: %w", err)
	}
	defer rows.Close()

	var communities []*UserCommunity
	for rows.Next() {
		var uc UserCommunity
		err := rows.Scan(
			&uc.ID,
			&uc.Name,
			&uc.Handle,
			&uc.Description,
			&uc.AvatarURL,
			&uc.CoverURL,
			&uc.Status,
			&uc.CreatorID,
			&uc.CreatedAt,
			&uc.UpdatedAt,
			&uc.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning user community row: %w", err)
		}
		communities = append(communities, &uc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user community rows: %w", err)
	}

	return communities, nil
}
