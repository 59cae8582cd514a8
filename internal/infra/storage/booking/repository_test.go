package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/pkg/dbmetrics"
)

var testColumns = []string{
	"id", "user_id", "service_id", "service_name", "address", "scheduled_date",
	"slot_start", "slot_end", "room_count", "special_instructions", "total_price",
	"status", "payment_status", "cancelled_at", "created_at", "updated_at",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock, db
}

func bookingRow(id int64, status string, scheduled time.Time) []driver.Value {
	return []driver.Value{
		id, "user-1", "svc-1", "Standard Cleaning",
		[]byte(`{"id":"addr-1","street":"1 Main St","city":"Springfield","state":"IL","zipCode":"62701","country":"USA","isDefault":true}`),
		scheduled, scheduled.Add(10 * time.Hour), scheduled.Add(12 * time.Hour),
		3, nil, "150.00", status, "pending", nil, scheduled, scheduled,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock, _ := newRepo(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	b := &domain.Booking{
		UserID:        "user-1",
		ServiceID:     "svc-1",
		ServiceName:   "Standard Cleaning",
		Address:       domain.Address{ID: "addr-1", Street: "1 Main St"},
		ScheduledDate: date,
		Slot:          domain.TimeSlot{Start: date.Add(10 * time.Hour), End: date.Add(12 * time.Hour)},
		RoomCount:     3,
		TotalPrice:    decimal.NewFromInt(150),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExecError(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Booking{UserID: "user-1"})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock, _ := newRepo(t)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, service_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(testColumns).AddRow(bookingRow(7, "confirmed", date)...))

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, "Springfield", b.Address.City)
	assert.True(t, decimal.NewFromInt(150).Equal(b.TotalPrice))
	assert.Equal(t, 2*time.Hour, b.Slot.Duration())
	assert.Nil(t, b.SpecialInstructions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(testColumns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_GetByID_LocksInTransaction(t *testing.T) {
	_, mock, db := newRepo(t)
	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows(testColumns).AddRow(bookingRow(7, "pending", date)...))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 7)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUser_NewestFirst(t *testing.T) {
	repo, mock, _ := newRepo(t)
	later := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	status := domain.StatusPending

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY scheduled_date DESC, slot_start DESC, id DESC LIMIT 20")).
		WithArgs("user-1", "pending").
		WillReturnRows(sqlmock.NewRows(testColumns).
			AddRow(bookingRow(2, "pending", later)...).
			AddRow(bookingRow(1, "pending", earlier)...))

	list, err := repo.ListByUser(context.Background(), domain.BookingFilter{UserID: "user-1", Status: &status, Limit: 20})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUser_UpcomingSoonestFirst(t *testing.T) {
	repo, mock, _ := newRepo(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	soon := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND slot_start > $2 AND status <> $3 ORDER BY slot_start ASC, id ASC LIMIT 5")).
		WithArgs("user-1", now, "cancelled").
		WillReturnRows(sqlmock.NewRows(testColumns).
			AddRow(bookingRow(3, "confirmed", soon)...).
			AddRow(bookingRow(4, "pending", later)...))

	list, err := repo.ListByUser(context.Background(), domain.BookingFilter{UserID: "user-1", UpcomingAfter: &now, Limit: 5})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(4), list[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, cancelled_at = NOW(), updated_at = NOW() WHERE id = $2")).
		WithArgs("cancelled", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePayment_NotFound(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_status = $1, status = $2")).
		WithArgs("paid", "confirmed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePayment(context.Background(), 5, domain.PaymentPaid, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs("in_progress", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 5, domain.StatusInProgress))
	require.NoError(t, mock.ExpectationsWereMet())
}
