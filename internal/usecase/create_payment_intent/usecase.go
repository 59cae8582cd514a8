package create_payment_intent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
	"github.com/vgcman16/CleanMate/pkg/retry"
)

// UseCase use case создания платежного намерения для бронирования
type UseCase struct {
	bookingRepo BookingRepository
	intentRepo  IntentRepository
	provider    PaymentProvider
	profiles    ProfileService
	timeout     time.Duration
	retryPolicy retry.Policy
	logger      Logger
}

// NewUseCase создает новый экземпляр use case. timeout ограничивает каждый вызов платежной системы
func NewUseCase(
	bookingRepo BookingRepository,
	intentRepo IntentRepository,
	provider PaymentProvider,
	profiles ProfileService,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		intentRepo:  intentRepo,
		provider:    provider,
		profiles:    profiles,
		timeout:     timeout,
		retryPolicy: retry.DefaultPolicy,
		logger:      logger,
	}
}

// Execute создает намерение или возвращает уже открытое.
// Локальная запись создается до обращения к платежной системе, ее ID служит ключом идемпотентности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentIntent: booking=%d user=%s", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID == "" {
		return nil, fmt.Errorf("%w: bookingID and userID are required", ErrInvalidInput)
	}

	// 1. Бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreatePaymentIntent: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreatePaymentIntent: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if !booking.IsOwnedBy(req.UserID) {
		uc.logger.Warn("CreatePaymentIntent: access denied for user=%s to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}
	if booking.Status == domain.StatusCancelled {
		return nil, ErrBookingCancelled
	}
	if booking.IsPaid() {
		return nil, ErrAlreadyPaid
	}

	// 2. Уже открытое намерение
	open, err := uc.intentRepo.FindOpenByBooking(ctx, booking.ID)
	switch {
	case err == nil:
		uc.logger.Info("CreatePaymentIntent: reusing open intent id=%d for booking id=%d", open.ID, booking.ID)
		return fromDomain(open), nil
	case !errors.Is(err, domain.ErrNotFound):
		uc.logger.Error("CreatePaymentIntent: failed to find open intent for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to find open intent: %v", ErrInternal, err)
	}

	amount := domain.AmountFromPrice(booking.TotalPrice)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// 3. Локальная запись
	intent, err := uc.intentRepo.Create(ctx, &domain.PaymentIntent{
		BookingID: booking.ID,
		Amount:    amount,
		Currency:  domain.Currency,
		Status:    domain.IntentPending,
	})
	if err != nil {
		uc.logger.Error("CreatePaymentIntent: failed to create intent for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to create intent: %v", ErrInternal, err)
	}

	// 4. Намерение в платежной системе
	external, err := uc.createExternal(ctx, booking, intent)
	if err != nil {
		uc.logger.Error("CreatePaymentIntent: payment provider failed for intent id=%d: %v", intent.ID, err)
		if updErr := uc.intentRepo.UpdateStatus(ctx, intent.ID, domain.IntentFailed); updErr != nil {
			uc.logger.Warn("CreatePaymentIntent: failed to mark intent id=%d failed: %v", intent.ID, updErr)
		}
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	// 5. Внешняя ссылка и client secret
	if err := uc.intentRepo.AttachExternal(ctx, intent.ID, external.ID, external.ClientSecret); err != nil {
		uc.logger.Error("CreatePaymentIntent: failed to attach external=%s to intent id=%d: %v", external.ID, intent.ID, err)
		return nil, fmt.Errorf("%w: failed to store external reference: %v", ErrInternal, err)
	}
	intent.ExternalID = &external.ID
	intent.ClientSecret = &external.ClientSecret

	uc.logger.Info("CreatePaymentIntent: intent id=%d external=%s amount=%d %s", intent.ID, external.ID, intent.Amount, intent.Currency)
	return fromDomain(intent), nil
}

func (uc *UseCase) createExternal(ctx context.Context, booking *domain.Booking, intent *domain.PaymentIntent) (*stripe.Intent, error) {
	req := stripe.CreateIntentRequest{
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		IdempotencyKey: "payment-intent-" + strconv.FormatInt(intent.ID, 10),
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(booking.ID, 10),
			"intent_id":  strconv.FormatInt(intent.ID, 10),
			"user_id":    booking.UserID,
		},
	}

	// Клиент нужен, чтобы подтверждать оплату сохраненными картами
	if p, err := uc.profiles.Profile(ctx, booking.UserID); err == nil {
		req.CustomerID = p.StripeCustomerID
	} else {
		uc.logger.Warn("CreatePaymentIntent: profile of user=%s unavailable: %v", booking.UserID, err)
	}

	var external *stripe.Intent
	err := retry.Do(ctx, uc.retryPolicy, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
		defer cancel()

		var err error
		external, err = uc.provider.CreateIntent(callCtx, req)
		if err != nil && !errors.Is(err, domain.ErrExternalService) {
			return retry.Permanent(err)
		}
		return err
	})
	return external, err
}
