package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/dberrors"
)

// IUpdateRepository defines community update database operations
type IUpdateRepository interface {
	Create(ctx context.Context, update *models.Update) (int64, error)
	ListByCommunity(ctx context.Context, communityID int64, limit int) ([]*models.Update, error)
}

// UpdateRepository handles database operations for community updates
type UpdateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUpdateRepository creates a new UpdateRepository
func NewUpdateRepository(db *pgxpool.Pool) *UpdateRepository {
	return &UpdateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new update and returns its id
func (r *UpdateRepository) Create(ctx context.Context, update *models.Update) (int64, error) {
	sql, args, err := r.sb.Insert("updates").
		Columns("community_id", "author_id", "content", "images").
		Values(update.CommunityID, update.AuthorID, update.Content, update.Images).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create update query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCommunityNotFound
		}
		return 0, fmt.Errorf("error creating update: %w", err)
	}

	return id, nil
}

// ListByCommunity returns the community's updates, newest first, with
// the author joined on each row.
func (r *UpdateRepository) ListByCommunity(ctx context.Context, communityID int64, limit int) ([]*models.Update, error) {
	sql, args, err := r.sb.Select("up.id, up.community_id, up.author_id, up.content, up.images, up.created_at, u.id, u.name, u.email, u.image").
		From("updates up").
		Join("users u ON u.id = up.author_id").
		Where(squirrel.Eq{"up.community_id": communityID}).
		OrderBy("up.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list updates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing updates: %w", err)
	}
	defer rows.Close()

	var updates []*models.Update
	for rows.Next() {
		var update models.Update
		var author models.User
		err := rows.Scan(
			&update.ID,
			&update.CommunityID,
			&update.AuthorID,
			&update.Content,
			&update.Images,
			&update.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.Image,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning update row: %w", err)
		}
		update.Author = &author
		updates = append(updates, &update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating update rows: %w", err)
	}

	return updates, nil
}
