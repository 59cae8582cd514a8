package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
	"github.com/vgcman16/CleanMate/internal/usecase/reconcile_payment"
)

// UseCase use case подтверждения оплаты на стороне сервера
type UseCase struct {
	intentRepo  IntentRepository
	bookingRepo BookingRepository
	provider    PaymentProvider
	reconciler  Reconciler
	timeout     time.Duration
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	intentRepo IntentRepository,
	bookingRepo BookingRepository,
	provider PaymentProvider,
	reconciler Reconciler,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		intentRepo:  intentRepo,
		bookingRepo: bookingRepo,
		provider:    provider,
		reconciler:  reconciler,
		timeout:     timeout,
		logger:      logger,
	}
}

// Execute подтверждает намерение сохраненным методом и сверяет результат.
// Отказ по карте не является ошибкой: возвращается Outcome=failed с причиной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: intent=%d user=%s", req.IntentID, req.UserID)

	// 1. Валидация входных данных
	if req.IntentID <= 0 || req.UserID == "" || req.PaymentMethodID == "" {
		return nil, fmt.Errorf("%w: intentID, userID and paymentMethodId are required", ErrInvalidInput)
	}

	// 2. Намерение и владелец бронирования
	intent, err := uc.intentRepo.GetByID(ctx, req.IntentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("ConfirmPayment: intent id=%d not found", req.IntentID)
			return nil, ErrIntentNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get intent id=%d: %v", req.IntentID, err)
		return nil, fmt.Errorf("%w: failed to get intent: %v", ErrInternal, err)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, intent.BookingID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to get booking id=%d: %v", intent.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if !booking.IsOwnedBy(req.UserID) {
		uc.logger.Warn("ConfirmPayment: access denied for user=%s to intent id=%d", req.UserID, intent.ID)
		return nil, ErrAccessDenied
	}

	// 3. Состояние намерения
	switch {
	case intent.Status == domain.IntentSucceeded:
		return &Response{
			IntentID:      intent.ID,
			Outcome:       stripe.OutcomeCompleted,
			IntentStatus:  intent.Status,
			BookingID:     booking.ID,
			BookingStatus: booking.Status,
			PaymentStatus: booking.PaymentStatus,
		}, nil
	case !intent.Status.IsOpen():
		return nil, ErrIntentClosed
	case intent.ExternalID == nil:
		return nil, ErrIntentNotReady
	}

	// 4. Подтверждение в платежной системе. Намерение в обработке не подтверждается
	// повторно: берется его текущий статус
	var result *stripe.ConfirmResult
	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	if intent.Status == domain.IntentProcessing {
		var current *stripe.Intent
		current, err = uc.provider.GetIntent(callCtx, *intent.ExternalID)
		if err == nil {
			result = &stripe.ConfirmResult{Outcome: current.Outcome(), Status: current.Status}
		}
	} else {
		result, err = uc.provider.ConfirmIntent(callCtx, *intent.ExternalID, req.PaymentMethodID)
	}
	cancel()
	if err != nil {
		uc.logger.Error("ConfirmPayment: confirm of external=%s failed: %v", *intent.ExternalID, err)
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	uc.logger.Info("ConfirmPayment: intent id=%d outcome=%s status=%s", intent.ID, result.Outcome, result.Status)

	// 5. Сверка
	reconciled, err := uc.reconciler.Execute(ctx, &reconcile_payment.Request{
		IntentID:       intent.ID,
		ExternalStatus: result.Status,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		IntentID:      reconciled.IntentID,
		Outcome:       result.Outcome,
		FailureReason: result.FailureReason,
		IntentStatus:  reconciled.IntentStatus,
		BookingID:     reconciled.BookingID,
		BookingStatus: reconciled.BookingStatus,
		PaymentStatus: reconciled.PaymentStatus,
	}, nil
}
