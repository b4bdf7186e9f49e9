package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/db"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/dberrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// EventFilter restricts event listing queries
type EventFilter struct {
	Status       *models.EventStatus
	Type         *models.EventType
	OrganizerID  *int64
	UpcomingOnly bool
	Search       string
	SortBy       string
	SortDesc     bool
}

// EventRepository handles event database operations
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

var eventSelectColumns = []string{
	"e.id", "e.title", "e.description", "e.date", "e.location", "e.type",
	"e.status", "e.max_attendees", "e.organizer_id", "e.created_at", "e.updated_at",
	"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active", "u.created_at",
	"(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id) AS current_attendees",
}

func scanEventWithOrganizer(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var organizer models.User
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.Type,
		&e.Status, &e.MaxAttendees, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
		&organizer.ID, &organizer.Email, &organizer.Name, &organizer.Role,
		&organizer.AvatarURL, &organizer.IsActive, &organizer.CreatedAt,
		&e.CurrentAttendees,
	)
	if err != nil {
		return nil, err
	}
	e.Organizer = &organizer
	return &e, nil
}

// Create inserts a new event and returns its ID. New events always start in DRAFT.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("events").
		Columns("title", "description", "date", "location", "type", "status",
			"max_attendees", "organizer_id", "created_at", "updated_at").
		Values(event.Title, event.Description, event.Date, event.Location, event.Type,
			models.EventStatusDraft, event.MaxAttendees, event.OrganizerID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return 0, fmt.Errorf("failed to build create event query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("organizerID", event.OrganizerID).Msg("Error executing create event query")
		return 0, fmt.Errorf("error creating event: %w", err)
	}

	return id, nil
}

// GetByID retrieves an event with its organizer and attendee count
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventSelectColumns...).
		From("events e").
		Join("users u ON u.id = e.organizer_id").
		Where(squirrel.Eq{"e.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEventWithOrganizer(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Int64("eventID", id).Msg("Error scanning event row")
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return event, nil
}

// GetAll retrieves events with filtering and pagination
func (r *EventRepository) GetAll(ctx context.Context, filter EventFilter, page, pageSize int) ([]*models.Event, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"e.status": *filter.Status})
	}
	if filter.Type != nil {
		where = append(where, squirrel.Eq{"e.type": *filter.Type})
	}
	if filter.OrganizerID != nil {
		where = append(where, squirrel.Eq{"e.organizer_id": *filter.OrganizerID})
	}
	if filter.UpcomingOnly {
		where = append(where, squirrel.GtOrEq{"e.date": time.Now()})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"e.title": pattern},
			squirrel.ILike{"e.description": pattern},
			squirrel.ILike{"e.location": pattern},
		})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("events e")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting events")
		return nil, 0, fmt.Errorf("error counting events: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	orderBy := eventSortColumn(filter.SortBy)
	if filter.SortDesc {
		orderBy += " DESC"
	}

	queryBuilder := r.sb.Select(eventSelectColumns...).
		From("events e").
		Join("users u ON u.id = e.organizer_id").
		OrderBy(orderBy).
		Offset(offset).
		Limit(uint64(limit))
	if len(where) > 0 {
		queryBuilder = queryBuilder.Where(where)
	}
	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list events query")
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event, err := scanEventWithOrganizer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, total, nil
}

func eventSortColumn(field string) string {
	switch field {
	case "title":
		return "e.title"
	case "createdAt":
		return "e.created_at"
	default:
		return "e.date"
	}
}

// Update modifies an event's editable fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("date", event.Date).
		Set("location", event.Location).
		Set("type", event.Type).
		Set("max_attendees", event.MaxAttendees).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", event.ID).Msg("Error executing update event query")
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// UpdateStatus moves an event to a new status. The expected current status
// guards against concurrent transitions.
func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, from, to models.EventStatus) error {
	sql, args, err := r.sb.Update("events").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error executing update event status query")
		return fmt.Errorf("error updating event status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIllegalTransition
	}

	return nil
}

// Delete removes an event and its registrations
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error executing delete event query")
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// Register adds a user to an event inside a transaction. The event row is
// locked so the capacity check and the insert are atomic under concurrent
// registrations.
func (r *EventRepository) Register(ctx context.Context, eventID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var status models.EventStatus
		var maxAttendees *int

		lockSQL, lockArgs, err := r.sb.Select("status", "max_attendees").
			From("events").
			Where(squirrel.Eq{"id": eventID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock event query: %w", err)
		}

		err = tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&status, &maxAttendees)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error locking event row: %w", err)
		}

		if status != models.EventStatusPublished {
			return apperrors.ErrEventNotRegistrable
		}

		if maxAttendees != nil {
			countSQL, countArgs, err := r.sb.Select("COUNT(*)").
				From("event_registrations").
				Where(squirrel.Eq{"event_id": eventID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build count registrations query: %w", err)
			}

			var count int
			if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&count); err != nil {
				return fmt.Errorf("error counting registrations: %w", err)
			}
			if count >= *maxAttendees {
				return apperrors.ErrEventFull
			}
		}

		insertSQL, insertArgs, err := r.sb.Insert("event_registrations").
			Columns("event_id", "user_id", "registered_at").
			Values(eventID, userID, time.Now()).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert registration query: %w", err)
		}

		if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyRegistered
			}
			return fmt.Errorf("error inserting registration: %w", err)
		}

		return nil
	})
}

// Unregister removes a user's registration from an event
func (r *EventRepository) Unregister(ctx context.Context, eventID, userID int64) error {
	sql, args, err := r.sb.Delete("event_registrations").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unregister query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Int64("userID", userID).Msg("Error executing unregister query")
		return fmt.Errorf("error removing registration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotRegistered
	}

	return nil
}

// IsRegistered checks whether a user is registered for an event
func (r *EventRepository) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("event_registrations").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build is registered query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking registration: %w", err)
	}

	return true, nil
}

// GetAttendees retrieves the registered users of an event
func (r *EventRepository) GetAttendees(ctx context.Context, eventID int64) ([]*models.User, []time.Time, error) {
	sql, args, err := r.sb.Select(
		"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active",
		"u.created_at", "er.registered_at").
		From("event_registrations er").
		Join("users u ON u.id = er.user_id").
		Where(squirrel.Eq{"er.event_id": eventID}).
		OrderBy("er.registered_at ASC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build get attendees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Msg("Error executing get attendees query")
		return nil, nil, fmt.Errorf("error retrieving attendees: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	registeredAt := make([]time.Time, 0)
	for rows.Next() {
		var u models.User
		var regAt time.Time
		err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.AvatarURL,
			&u.IsActive, &u.CreatedAt, &regAt)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning attendee row: %w", err)
		}
		users = append(users, &u)
		registeredAt = append(registeredAt, regAt)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating attendee rows: %w", err)
	}

	return users, registeredAt, nil
}

// GetRegisteredEventIDs returns the IDs of events the user is registered for
// among the given candidates.
func (r *EventRepository) GetRegisteredEventIDs(ctx context.Context, userID int64, eventIDs []int64) (map[int64]bool, error) {
	registered := make(map[int64]bool)
	if len(eventIDs) == 0 {
		return registered, nil
	}

	sql, args, err := r.sb.Select("event_id").
		From("event_registrations").
		Where(squirrel.Eq{"user_id": userID, "event_id": eventIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build registered events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving registered events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning registered event row: %w", err)
		}
		registered[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registered event rows: %w", err)
	}

	return registered, nil
}

// CountAll returns the total number of events
func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("events").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count events query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return count, nil
}

// CountByStatus returns event counts grouped by status
func (r *EventRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

// CountByType returns event counts grouped by type
func (r *EventRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "type")
}

func (r *EventRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	sql, args, err := r.sb.Select(column, "COUNT(*)").
		From("events").
		GroupBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grouped event count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("column", column).Msg("Error executing grouped event count query")
		return nil, fmt.Errorf("error counting events by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("error scanning grouped event count row: %w", err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grouped event count rows: %w", err)
	}

	return counts, nil
}

// CountRegistrations returns the total number of event registrations
func (r *EventRepository) CountRegistrations(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("event_registrations").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count registrations query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

// CountUpcoming returns the number of published events that have not happened yet
func (r *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("events").
		Where(squirrel.And{
			squirrel.Eq{"status": models.EventStatusPublished},
			squirrel.GtOrEq{"date": time.Now()},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count upcoming events query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting upcoming events: %w", err)
	}
	return count, nil
}
