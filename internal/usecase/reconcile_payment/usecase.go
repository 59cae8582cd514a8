package reconcile_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// UseCase use case сверки намерения с платежной системой
type UseCase struct {
	intentRepo   IntentRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	intentRepo IntentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		intentRepo:   intentRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ExecuteByExternalID сверяет намерение, найденное по ID платежной системы
func (uc *UseCase) ExecuteByExternalID(ctx context.Context, externalID, externalStatus string) (*Response, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: external id is required", ErrInvalidInput)
	}

	intent, err := uc.intentRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("ReconcilePayment: intent external=%s not found", externalID)
			return nil, ErrIntentNotFound
		}
		uc.logger.Error("ReconcilePayment: failed to get intent external=%s: %v", externalID, err)
		return nil, fmt.Errorf("%w: failed to get intent: %v", ErrInternal, err)
	}

	return uc.Execute(ctx, &Request{IntentID: intent.ID, ExternalStatus: externalStatus})
}

// Execute сверяет намерение. Сначала сохраняется статус намерения, затем
// обновляется бронирование, поэтому повторный запуск доводит бронирование
// до согласованного состояния. Успешное намерение не понижается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReconcilePayment: intent=%d external_status=%s", req.IntentID, req.ExternalStatus)

	if req.IntentID <= 0 {
		return nil, fmt.Errorf("%w: intentID must be positive", ErrInvalidInput)
	}

	mapped := MapExternalStatus(req.ExternalStatus)

	// 1. Статус намерения
	var intent *domain.PaymentIntent
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.intentRepo.GetByID(txCtx, req.IntentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ReconcilePayment: intent id=%d not found", req.IntentID)
				return ErrIntentNotFound
			}
			uc.logger.Error("ReconcilePayment: failed to get intent id=%d: %v", req.IntentID, err)
			return fmt.Errorf("%w: failed to get intent: %v", ErrInternal, err)
		}

		next := nextIntentStatus(current.Status, mapped)
		if next != current.Status {
			if err := uc.intentRepo.UpdateStatus(txCtx, current.ID, next); err != nil {
				uc.logger.Error("ReconcilePayment: failed to update intent id=%d: %v", current.ID, err)
				return fmt.Errorf("%w: failed to update intent: %v", ErrInternal, err)
			}
			uc.logger.Info("ReconcilePayment: intent id=%d %s -> %s", current.ID, current.Status, next)
			current.Status = next
		}

		intent = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncPaymentReconciled(string(intent.Status))

	// 2. Бронирование
	var (
		booking *domain.Booking
		changed bool
	)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, intent.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Error("ReconcilePayment: booking id=%d of intent id=%d not found", intent.BookingID, intent.ID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ReconcilePayment: failed to get booking id=%d: %v", intent.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		paymentStatus, status, needUpdate := bookingAfter(current, intent.Status)
		if needUpdate {
			if err := uc.bookingRepo.UpdatePayment(txCtx, current.ID, paymentStatus, status); err != nil {
				uc.logger.Error("ReconcilePayment: failed to update booking id=%d: %v", current.ID, err)
				return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
			}
			uc.logger.Info("ReconcilePayment: booking id=%d payment=%s status=%s", current.ID, paymentStatus, status)
			current.PaymentStatus = paymentStatus
			current.Status = status
			changed = true
		}

		booking = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		event := domain.NewBookingEvent(domain.EventBookingPaymentUpdated, booking, uc.timeProvider.Now())
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("ReconcilePayment: failed to publish %s for booking id=%d: %v", event.Type, booking.ID, err)
		}
	}

	return &Response{
		IntentID:      intent.ID,
		IntentStatus:  intent.Status,
		BookingID:     booking.ID,
		BookingStatus: booking.Status,
		PaymentStatus: booking.PaymentStatus,
	}, nil
}
