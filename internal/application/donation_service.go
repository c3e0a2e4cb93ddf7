package application

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	repo "github.com/oksasatya/go-community-events/internal/domain/repository"
)

type DonationService struct {
	Donations repo.DonationRepository
	Events    repo.EventRepository
	Users     repo.UserRepository
	Notify    Notifier
	Now       func() time.Time
	Logger    *logrus.Logger
}

func NewDonationService(donations repo.DonationRepository, events repo.EventRepository, users repo.UserRepository, n Notifier, logger *logrus.Logger) *DonationService {
	return &DonationService{Donations: donations, Events: events, Users: users, Notify: n, Now: time.Now, Logger: logger}
}

type MakeDonationInput struct {
	EventID string
	Amount  float64
}

// DonationReceipt confirms a recorded donation.
type DonationReceipt struct {
	DonationID   string
	EventID      string
	EventTitle   string
	Amount       float64
	DonationDate time.Time
}

func (s *DonationService) Make(ctx context.Context, actorID string, in MakeDonationInput) (*DonationReceipt, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	e, err := s.Events.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, translate(err, ErrEventNotFound)
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	d := &entity.Donation{
		DonorID:      actor.ID,
		EventID:      e.ID,
		Amount:       in.Amount,
		DonationDate: now(),
	}
	if err := s.Donations.Create(ctx, d); err != nil {
		return nil, translate(err, ErrUserNotFound)
	}

	send(s.Notify, s.Logger, actor.Email, "Donation Successful",
		fmt.Sprintf("Thank you for your generous donation of $%s to the event %q.", formatAmount(d.Amount), e.Title))

	return &DonationReceipt{
		DonationID:   d.ID,
		EventID:      e.ID,
		EventTitle:   e.Title,
		Amount:       d.Amount,
		DonationDate: d.DonationDate,
	}, nil
}

func (s *DonationService) ForUser(ctx context.Context, userID string) ([]*entity.Donation, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	out, err := s.Donations.ListByDonor(ctx, userID)
	if err != nil {
		return nil, Internal(err)
	}
	return out, nil
}

func (s *DonationService) ForEvent(ctx context.Context, eventID string) ([]*entity.Donation, error) {
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		return nil, translate(err, ErrEventNotFound)
	}
	out, err := s.Donations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, Internal(err)
	}
	return out, nil
}

// maxDonationAmount is the exclusive upper bound of the NUMERIC(12,2) amount column.
const maxDonationAmount = 1e10

// validateAmount accepts finite positive amounts the ledger stores exactly: at most two decimal
// places in their shortest form, below maxDonationAmount.
func validateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return ErrInvalidAmount
	}
	if v >= maxDonationAmount {
		return ErrAmountTooLarge
	}
	if s := formatAmount(v); strings.IndexByte(s, '.') >= 0 && len(s)-strings.IndexByte(s, '.')-1 > 2 {
		return ErrInvalidAmount
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
