package paymentintent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/pkg/dbmetrics"
	"github.com/vgcman16/CleanMate/pkg/psqlbuilder"
)

var intentColumns = []string{
	"id",
	"booking_id",
	"amount",
	"currency",
	"status",
	"external_id",
	"client_secret",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежных намерений
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет локальную запись намерения до обращения к платежной системе
func (r *Repository) Create(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_intents").
		Columns("booking_id", "amount", "currency", "status").
		Values(intent.BookingID, intent.Amount, intent.Currency, intent.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&intent.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	intent.CreatedAt = createdAt.Time
	intent.UpdatedAt = updatedAt.Time

	return intent, nil
}

// GetByID получает намерение по ID (в транзакции с блокировкой строки)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PaymentIntent, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByExternalID получает намерение по идентификатору платежной системы
func (r *Repository) GetByExternalID(ctx context.Context, externalID string) (*domain.PaymentIntent, error) {
	return r.getOne(ctx, "GetByExternalID", squirrel.Eq{"external_id": externalID})
}

// FindOpenByBooking возвращает последнее незавершенное намерение бронирования
func (r *Repository) FindOpenByBooking(ctx context.Context, bookingID int64) (*domain.PaymentIntent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intentColumns...).
		From("payment_intents").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": []string{string(domain.IntentPending), string(domain.IntentProcessing)}}).
		Where(squirrel.NotEq{"external_id": nil}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOpenByBooking - build select query: %v", ErrBuildQuery, err)
	}

	intent, err := scanIntent(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIntentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindOpenByBooking - scan intent: %v", ErrScanRow, err)
	}

	return intent, nil
}

// AttachExternal сохраняет ссылку на намерение в платежной системе и client secret
func (r *Repository) AttachExternal(ctx context.Context, id int64, externalID, clientSecret string) error {
	query, args, err := psqlbuilder.Update("payment_intents").
		Set("external_id", externalID).
		Set("client_secret", clientSecret).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AttachExternal - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "AttachExternal", query, args)
}

// UpdateStatus обновляет статус намерения
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.IntentStatus) error {
	query, args, err := psqlbuilder.Update("payment_intents").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "UpdateStatus", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.PaymentIntent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intentColumns...).
		From("payment_intents").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	intent, err := scanIntent(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIntentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan intent: %v", ErrScanRow, op, err)
	}

	return intent, nil
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
		return ErrIntentNotFound
	}

	return nil
}

func scanIntent(row *sql.Row) (*domain.PaymentIntent, error) {
	var (
		intent    domain.PaymentIntent
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&intent.ID,
		&intent.BookingID,
		&intent.Amount,
		&intent.Currency,
		&intent.Status,
		&intent.ExternalID,
		&intent.ClientSecret,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	intent.CreatedAt = createdAt.Time
	intent.UpdatedAt = updatedAt.Time

	return &intent, nil
}
