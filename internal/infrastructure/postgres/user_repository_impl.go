package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

const userSelect = `
	SELECT u.id::text, u.name, u.email, u.password, u.google_id, u.is_verified, u.dob, u.phone,
		u.province_state, u.country, u.profile_picture, u.user_type, u.interests,
		ARRAY(SELECT p.event_id::text FROM event_participants p WHERE p.user_id = u.id ORDER BY p.joined_at),
		ARRAY(SELECT e.id::text FROM events e WHERE e.creator_id = u.id ORDER BY e.created_at),
		ARRAY(SELECT d.id::text FROM donations d WHERE d.donor_id = u.id ORDER BY d.donation_date),
		ARRAY(SELECT b.id::text FROM blog_posts b WHERE b.author_id = u.id ORDER BY b.post_date),
		u.created_at, u.updated_at
	FROM users u`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.ID = newID(u.ID)
	if u.UserType == "" {
		u.UserType = entity.UserTypeRegular
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password, google_id, is_verified, dob, phone,
			province_state, country, profile_picture, user_type, interests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Email, u.Password, u.GoogleID, u.IsVerified, u.DOB, u.Phone,
		u.Location.ProvinceState, u.Location.Country, u.ProfilePicture, string(u.UserType), textArray(u.Interests))

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return r.getOne(ctx, userSelect+` WHERE u.id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE u.email = $1`, email)
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*entity.User{}, nil
	}
	rows, err := r.db.Query(ctx, userSelect+` WHERE u.id = ANY($1::uuid[]) ORDER BY u.created_at`, valid)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0, len(valid))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, fn func(u *entity.User) error) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	var out *entity.User
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx, userSelect+` WHERE u.id = $1 FOR UPDATE OF u`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}
		if err := fn(u); err != nil {
			return err
		}
		err = tx.QueryRow(ctx, `
			UPDATE users
			SET name = $1, dob = $2, phone = $3, province_state = $4, country = $5,
				profile_picture = $6, interests = $7, updated_at = now()
			WHERE id = $8
			RETURNING updated_at
		`, u.Name, u.DOB, u.Phone, u.Location.ProvinceState, u.Location.Country,
			u.ProfilePicture, textArray(u.Interests), id).Scan(&u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	var userType string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.GoogleID, &u.IsVerified, &u.DOB, &u.Phone,
		&u.Location.ProvinceState, &u.Location.Country, &u.ProfilePicture, &userType, &u.Interests,
		&u.JoinedEvents, &u.CreatedEvents, &u.Donations, &u.BlogPosts,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.UserType = entity.ParseUserType(userType)
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
