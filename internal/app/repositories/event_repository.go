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
	"github.com/namansharma28/gravitas-backend/internal/pkg/dberrors"
)

// IEventRepository defines event database operations
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListByCommunity(ctx context.Context, communityID int64, limit int) ([]*models.Event, error)
	UpsertRSVP(ctx context.Context, eventID, userID int64, kind models.RSVPKind) error
}

// EventRepository handles database operations for events and RSVPs
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const eventColumns = "e.id, e.community_id, e.creator_id, e.title, e.description, e.event_date, e.event_time, e.location, e.created_at"

// rsvp counts come from correlated subqueries so a single round trip
// covers both the event rows and their aggregates
const eventCountColumns = ", (SELECT COUNT(*) FROM event_rsvps r WHERE r.event_id = e.id AND r.kind = 'attending')" +
	", (SELECT COUNT(*) FROM event_rsvps r WHERE r.event_id = e.id AND r.kind = 'interested')"

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.CommunityID,
		&event.CreatorID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.EventTime,
		&event.Location,
		&event.CreatedAt,
		&event.AttendeeCount,
		&event.InterestedCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error scanning event row: %w", err)
	}
	return &event, nil
}

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	sql, args, err := r.sb.Insert("events").
		Columns("community_id", "creator_id", "title", "description", "event_date", "event_time", "location").
		Values(event.CommunityID, event.CreatorID, event.Title, event.Description, event.EventDate, event.EventTime, event.Location).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create event query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCommunityNotFound
		}
		return 0, fmt.Errorf("error creating event: %w", err)
	}

	return id, nil
}

// GetByID retrieves an event with its RSVP counts
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns + eventCountColumns).
		From("events e").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	return scanEvent(r.db.QueryRow(ctx, sql, args...))
}

// ListByCommunity returns the community's events, soonest upcoming first
// and past events after, each with RSVP counts.
func (r *EventRepository) ListByCommunity(ctx context.Context, communityID int64, limit int) ([]*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns + eventCountColumns).
		From("events e").
		Where(squirrel.Eq{"e.community_id": communityID}).
		OrderBy("CASE WHEN e.event_date >= CURRENT_DATE THEN 0 ELSE 1 END", "e.event_date ASC", "e.event_time ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// UpsertRSVP records the user's RSVP, replacing any prior kind
func (r *EventRepository) UpsertRSVP(ctx context.Context, eventID, userID int64, kind models.RSVPKind) error {
	sql, args, err := r.sb.Insert("event_rsvps").
		Columns("event_id", "user_id", "kind").
		Values(eventID, userID, kind).
		Suffix("ON CONFLICT (event_id, user_id) DO UPDATE SET kind = EXCLUDED.kind, created_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build rsvp query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error recording rsvp: %w", err)
	}

	return nil
}
