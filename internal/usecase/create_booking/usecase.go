package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      ServiceCatalog
	addresses    AddressBook
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog ServiceCatalog,
	addresses AddressBook,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		addresses:    addresses,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Цена фиксируется в момент создания, адрес копируется в бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: user=%s, service=%s, address=%s, date=%s, slot=%s, rooms=%d",
		req.UserID, req.ServiceID, req.AddressID, req.Date.Format(domain.DateFormat), req.SlotStart, req.RoomCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalog.GetDomain(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsAvailable {
		uc.logger.Warn("CreateBooking: service id=%s is not available", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 4. Адрес из профиля пользователя
	address, err := uc.addresses.Address(ctx, req.UserID, req.AddressID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: address id=%s not found for user=%s", req.AddressID, req.UserID)
			return nil, ErrAddressRequired
		}
		uc.logger.Error("CreateBooking: failed to get address id=%s: %v", req.AddressID, err)
		return nil, fmt.Errorf("%w: failed to get address: %v", ErrInternal, err)
	}

	// 5. Слот должен быть в сетке дня
	start, err := slotStartTime(req.Date, req.SlotStart)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}
	slot, ok := pricing.FindSlot(req.Date, *service, start)
	if !ok || !slot.IsAvailable {
		uc.logger.Warn("CreateBooking: slot %s is not available on %s", req.SlotStart, req.Date.Format(domain.DateFormat))
		return nil, ErrSlotNotAvailable
	}

	// 6. Слот не в прошлом
	if slot.StartsBefore(now) {
		uc.logger.Warn("CreateBooking: slot %s starts before now=%s", slot.Start.Format(domain.TimeFormat), now.Format("2006-01-02T15:04"))
		return nil, ErrSlotInPast
	}

	// 7. Минимум комнат
	if err := validateRooms(service, req.RoomCount); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 8. Создаем бронирование со снимком услуги и адреса
	year, month, day := req.Date.Date()
	booking := &domain.Booking{
		UserID:              req.UserID,
		ServiceID:           service.ID,
		ServiceName:         service.Name,
		Address:             address,
		ScheduledDate:       time.Date(year, month, day, 0, 0, 0, 0, req.Date.Location()),
		Slot:                slot,
		RoomCount:           req.RoomCount,
		SpecialInstructions: normalizeInstructions(req.SpecialInstructions),
		TotalPrice:          pricing.ComputePrice(*service, req.RoomCount),
		Status:              domain.StatusPending,
		PaymentStatus:       domain.PaymentPending,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated(string(service.PriceUnit))
	event := domain.NewBookingEvent(domain.EventBookingCreated, created, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, created.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s", created.ID, created.TotalPrice.StringFixed(2))
	return created, nil
}
