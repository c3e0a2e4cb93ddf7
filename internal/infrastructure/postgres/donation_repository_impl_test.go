package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

func TestDonationRepository_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "success",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("INSERT INTO donations").
					WithArgs(pgxmock.AnyArg(), userID, eventID, 25.5, now).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "unknown donor",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("INSERT INTO donations").
					WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})
			},
			wantErr: repository.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)

			defer mock.Close()

			tt.mockSetup(mock)

			d := &entity.Donation{DonorID: userID, EventID: eventID, Amount: 25.5, DonationDate: now}
			err = NewDonationRepository(mock).Create(ctx, d)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, d.ID)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDonationRepository_ListByEvent(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	defer mock.Close()

	now := time.Now().Truncate(time.Second)
	rows := pgxmock.NewRows([]string{"id", "donor_id", "event_id", "amount", "donation_date"}).
		AddRow(otherID, userID, eventID, 10.0, now)
	mock.ExpectQuery(`FROM donations WHERE event_id = \$1`).
		WithArgs(eventID).
		WillReturnRows(rows)

	got, err := NewDonationRepository(mock).ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, &entity.Donation{ID: otherID, DonorID: userID, EventID: eventID, Amount: 10, DonationDate: now}, got[0])

	require.NoError(t, mock.ExpectationsWereMet())
}
