package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
	bookingRepo "github.com/vgcman16/CleanMate/internal/infra/storage/booking"
	"github.com/vgcman16/CleanMate/internal/service/bookings/models"
)

// MaxListLimit наибольший размер страницы списка бронирований
const MaxListLimit = 100

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repositoryError("GetByID", id, err)
	}

	if !booking.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListUserBookings получает историю бронирований пользователя, новые первыми.
// С Upcoming возвращает только будущие неотмененные визиты, ближайшие первыми.
// Опционально фильтрует по статусу и ограничивает количество
func (s *Service) ListUserBookings(ctx context.Context, userID string, req models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListUserBookings: fetching bookings for user=%s, status=%v, upcoming=%t, limit=%d",
		userID, req.Status, req.Upcoming, req.Limit)

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if req.Limit < 0 || req.Limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxListLimit)
	}

	filter := domain.BookingFilter{UserID: userID, Limit: req.Limit}
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListUserBookings: invalid status=%s for user=%s", *req.Status, userID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &parsed
	}
	if req.Upcoming {
		now := s.timeProvider.Now()
		filter.UpcomingAfter = &now
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, filter)
	if err != nil {
		s.logger.Error("ListUserBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUserBookings: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование владельца.
// Завершенное или уже отмененное бронирование не меняется
func (s *Service) Cancel(ctx context.Context, id int64, userID string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%s", id, userID)

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return s.repositoryError("Cancel", id, err)
		}

		if !booking.IsOwnedBy(userID) {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%d", userID, id)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d has status=%s", id, booking.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCancel, booking.Status)
		}

		if err := s.bookingRepo.Cancel(ctx, id); err != nil {
			return s.repositoryError("Cancel", id, err)
		}

		cancelled, err = s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return s.repositoryError("Cancel", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, cancelled)
	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus переводит бронирование в новый статус через машину состояний
func (s *Service) UpdateStatus(ctx context.Context, id int64, target string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d target=%s", id, target)

	status, err := domain.ParseBookingStatus(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return s.repositoryError("UpdateStatus", id, err)
		}

		if !booking.Status.CanTransitionTo(status) {
			s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%d", booking.Status, status, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
		}

		if status == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(ctx, id)
		} else {
			err = s.bookingRepo.UpdateStatus(ctx, id, status)
		}
		if err != nil {
			return s.repositoryError("UpdateStatus", id, err)
		}

		updated, err = s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return s.repositoryError("UpdateStatus", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, updated)
	s.logger.Info("UpdateStatus: booking id=%d moved to %s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// afterTransition учитывает переход и публикует событие.
// Ошибка публикации не отменяет уже сохраненное изменение
func (s *Service) afterTransition(ctx context.Context, booking *domain.Booking) {
	s.metrics.IncBookingTransition(string(booking.Status))

	event := domain.NewBookingEvent(domain.EventBookingStatusChanged, booking, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("afterTransition: failed to publish %s for booking id=%d: %v", event.Type, booking.ID, err)
	}
}

func (s *Service) repositoryError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
