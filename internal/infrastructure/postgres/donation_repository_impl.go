package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

const donationSelect = `SELECT id::text, donor_id::text, event_id::text, amount::float8, donation_date FROM donations`

type DonationRepository struct {
	db DB
}

func NewDonationRepository(db DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, d *entity.Donation) error {
	if !validID(d.DonorID) || !validID(d.EventID) {
		return repository.ErrNotFound
	}
	d.ID = newID(d.ID)
	_, err := r.db.Exec(ctx, `
		INSERT INTO donations (id, donor_id, event_id, amount, donation_date)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.DonorID, d.EventID, d.Amount, d.DonationDate)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (r *DonationRepository) ListByDonor(ctx context.Context, donorID string) ([]*entity.Donation, error) {
	if !validID(donorID) {
		return []*entity.Donation{}, nil
	}
	return r.list(ctx, donationSelect+` WHERE donor_id = $1 ORDER BY donation_date, id`, donorID)
}

func (r *DonationRepository) ListByEvent(ctx context.Context, eventID string) ([]*entity.Donation, error) {
	if !validID(eventID) {
		return []*entity.Donation{}, nil
	}
	return r.list(ctx, donationSelect+` WHERE event_id = $1 ORDER BY donation_date, id`, eventID)
}

func (r *DonationRepository) list(ctx context.Context, query string, arg string) ([]*entity.Donation, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select donations: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Donation, 0)
	for rows.Next() {
		d := &entity.Donation{}
		if err := rows.Scan(&d.ID, &d.DonorID, &d.EventID, &d.Amount, &d.DonationDate); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return out, nil
}

var _ repository.DonationRepository = (*DonationRepository)(nil)
