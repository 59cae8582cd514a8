package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/pkg/dbmetrics"
	"github.com/vgcman16/CleanMate/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"service_id",
	"service_name",
	"address",
	"scheduled_date",
	"slot_start",
	"slot_end",
	"room_count",
	"special_instructions",
	"total_price",
	"status",
	"payment_status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование и заполняет ID и метки времени.
// Адрес сохраняется снимком (jsonb), последующие правки адреса в профиле на бронирование не влияют
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	address, err := json.Marshal(booking.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal address: %v", ErrEncodeAddress, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"service_id",
			"service_name",
			"address",
			"scheduled_date",
			"slot_start",
			"slot_end",
			"room_count",
			"special_instructions",
			"total_price",
			"status",
			"payment_status",
		).
		Values(
			booking.UserID,
			booking.ServiceID,
			booking.ServiceName,
			address,
			booking.ScheduledDate,
			booking.Slot.Start,
			booking.Slot.End,
			booking.RoomCount,
			booking.SpecialInstructions,
			booking.TotalPrice,
			booking.Status,
			booking.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByUser получает бронирования пользователя, новые (по дате визита) первыми.
// Для предстоящих визитов порядок обратный: ближайшие первыми.
// Опционально фильтрует по статусу и ограничивает количество
func (r *Repository) ListByUser(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": filter.UserID})

	if filter.UpcomingAfter != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Gt{"slot_start": *filter.UpcomingAfter}).
			Where(squirrel.NotEq{"status": domain.StatusCancelled}).
			OrderBy("slot_start ASC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("scheduled_date DESC", "slot_start DESC", "id DESC")
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "UpdateStatus", query, args)
}

// Cancel переводит бронирование в статус cancelled и фиксирует время отмены.
// Запись не удаляется, история сохраняется
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "Cancel", query, args)
}

// UpdatePayment обновляет статус оплаты и статус бронирования одним запросом
func (r *Repository) UpdatePayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", paymentStatus).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "UpdatePayment", query, args)
}

func (r *Repository) execUpdate(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		address   []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ServiceID,
		&booking.ServiceName,
		&address,
		&booking.ScheduledDate,
		&booking.Slot.Start,
		&booking.Slot.End,
		&booking.RoomCount,
		&booking.SpecialInstructions,
		&booking.TotalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(address, &booking.Address); err != nil {
		return nil, fmt.Errorf("unmarshal address: %w", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
