package repository

import (
	"context"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
)

type DonationRepository interface {
	// Create records the donation. The single row is visible from both the donor's and the
	// event's donation lists.
	Create(ctx context.Context, d *entity.Donation) error
	ListByDonor(ctx context.Context, donorID string) ([]*entity.Donation, error)
	ListByEvent(ctx context.Context, eventID string) ([]*entity.Donation, error)
}
