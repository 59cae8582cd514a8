package paymentintent

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var testColumns = []string{
	"id", "booking_id", "amount", "currency", "status", "external_id", "client_secret", "created_at", "updated_at",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_intents (booking_id,amount,currency,status) VALUES ($1,$2,$3,$4) RETURNING id")).
		WithArgs(int64(42), int64(15000), "usd", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	intent, err := repo.Create(context.Background(), &domain.PaymentIntent{
		BookingID: 42,
		Amount:    15000,
		Currency:  domain.Currency,
		Status:    domain.IntentPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), intent.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByExternalID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE external_id = $1")).
		WithArgs("pi_123").
		WillReturnRows(sqlmock.NewRows(testColumns).
			AddRow(int64(3), int64(42), int64(15000), "usd", "processing", "pi_123", "pi_123_secret", now, now))

	intent, err := repo.GetByExternalID(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentProcessing, intent.Status)
	require.NotNil(t, intent.ExternalID)
	assert.Equal(t, "pi_123", *intent.ExternalID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOpenByBooking_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE booking_id = $1 AND status IN ($2,$3) AND external_id IS NOT NULL")).
		WithArgs(int64(42), "pending", "processing").
		WillReturnRows(sqlmock.NewRows(testColumns))

	_, err := repo.FindOpenByBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrIntentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AttachExternal(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment_intents SET external_id = $1, client_secret = $2, updated_at = NOW() WHERE id = $3")).
		WithArgs("pi_123", "secret", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AttachExternal(context.Background(), 3, "pi_123", "secret"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE payment_intents").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 3, domain.IntentSucceeded)
	assert.ErrorIs(t, err, ErrIntentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
