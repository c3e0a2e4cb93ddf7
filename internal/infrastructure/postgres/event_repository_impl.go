package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

const eventSelect = `
	SELECT e.id::text, e.creator_id::text, e.title, e.description, e.banner_image, e.location,
		e.start_date, e.end_date, e.age_lower, e.age_upper, e.capacity, e.tags,
		ARRAY(SELECT p.user_id::text FROM event_participants p WHERE p.event_id = e.id ORDER BY p.joined_at),
		ARRAY(SELECT d.id::text FROM donations d WHERE d.event_id = e.id ORDER BY d.donation_date),
		e.created_at, e.updated_at
	FROM events e`

const (
	lockEventSQL  = `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`
	enrollmentSQL = `SELECT count(*), count(*) FILTER (WHERE user_id = $2) FROM event_participants WHERE event_id = $1`
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	e.ID = newID(e.ID)
	row := r.db.QueryRow(ctx, `
		INSERT INTO events (id, creator_id, title, description, banner_image, location,
			start_date, end_date, age_lower, age_upper, capacity, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`, e.ID, e.CreatorID, e.Title, e.Description, e.BannerImage, e.Location,
		e.StartDate, e.EndDate, e.AgeLimit.Lower, e.AgeLimit.Upper, e.Capacity, textArray(e.Tags))

	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	e, err := scanEvent(r.db.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) Find(ctx context.Context, f repository.EventFilter) ([]*entity.Event, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.Search != "" {
		add("(e.title ILIKE $%[1]d OR e.description ILIKE $%[1]d)", containsPattern(f.Search))
	}
	if f.Location != "" {
		add("e.location ILIKE $%d", containsPattern(f.Location))
	}
	if f.StartDate != nil {
		add("e.start_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("e.end_date <= $%d", *f.EndDate)
	}
	if len(f.Tags) > 0 {
		add("e.tags && $%d", f.Tags)
	}

	query := eventSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.start_date, e.id"
	return r.list(ctx, query, args...)
}

func (r *EventRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Event, error) {
	if len(ids) == 0 {
		return []*entity.Event{}, nil
	}
	return r.list(ctx, eventSelect+` WHERE e.id = ANY($1::uuid[]) ORDER BY e.start_date, e.id`, ids)
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, fn func(e *entity.Event) error) (*entity.Event, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	var out *entity.Event
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := lockEvent(ctx, tx, id); err != nil {
			return err
		}
		// Membership writers take the same lock, so the participant list read here is current.
		e, err := scanEvent(tx.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
		if err != nil {
			return fmt.Errorf("select event: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
		if e.Capacity < len(e.Participants) {
			return repository.ErrCapacityBelowEnrollment
		}
		err = tx.QueryRow(ctx, `
			UPDATE events
			SET title = $1, description = $2, banner_image = $3, location = $4, start_date = $5,
				end_date = $6, age_lower = $7, age_upper = $8, capacity = $9, tags = $10, updated_at = now()
			WHERE id = $11
			RETURNING updated_at
		`, e.Title, e.Description, e.BannerImage, e.Location, e.StartDate, e.EndDate,
			e.AgeLimit.Lower, e.AgeLimit.Upper, e.Capacity, textArray(e.Tags), id).Scan(&e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the event; participant rows cascade while donation rows are kept.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	if !validID(eventID) || !validID(userID) {
		return repository.ErrNotFound
	}
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		capacity, err := lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		var total, mine int
		if err := tx.QueryRow(ctx, enrollmentSQL, eventID, userID).Scan(&total, &mine); err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if mine > 0 {
			return repository.ErrAlreadyParticipating
		}
		if total >= capacity {
			return repository.ErrCapacityReached
		}
		if _, err := tx.Exec(ctx, `INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`, eventID, userID); err != nil {
			switch pgCode(err) {
			case pgUniqueViolation:
				return repository.ErrAlreadyParticipating
			case pgForeignKeyViolation:
				// the event row is locked, so the missing reference is the user
				return repository.ErrUserNotFound
			}
			return fmt.Errorf("insert participant: %w", err)
		}
		return nil
	})
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	if !validID(eventID) || !validID(userID) {
		return repository.ErrNotFound
	}
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := lockEvent(ctx, tx, eventID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
		if err != nil {
			return fmt.Errorf("delete participant: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotParticipating
		}
		return nil
	})
}

// lockEvent takes the row lock that serialises every membership writer of the event.
func lockEvent(ctx context.Context, tx pgx.Tx, id string) (int, error) {
	var capacity int
	if err := tx.QueryRow(ctx, lockEventSQL, id).Scan(&capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("lock event: %w", err)
	}
	return capacity, nil
}

func scanEvent(row rowScanner) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.ID, &e.CreatorID, &e.Title, &e.Description, &e.BannerImage, &e.Location,
		&e.StartDate, &e.EndDate, &e.AgeLimit.Lower, &e.AgeLimit.Upper, &e.Capacity, &e.Tags,
		&e.Participants, &e.Donations, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
