package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/pricing"
)

// UseCase use case для получения слотов дня
type UseCase struct {
	catalog      ServiceCatalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog ServiceCatalog, logger Logger) *UseCase {
	return &UseCase{
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает сетку слотов дня. Уже начавшиеся слоты помечаются недоступными
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ServiceID == "" {
		return nil, fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalog.GetDomain(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Строим сетку и отмечаем прошедшие слоты
	slots := pricing.AvailableSlots(req.Date, *service)
	for i := range slots {
		if slots[i].StartsBefore(now) {
			slots[i].IsAvailable = false
		}
	}

	uc.logger.Info("GetAvailableSlots: returning %d slots for service=%s", len(slots), req.ServiceID)
	return &Response{
		Date:      req.Date,
		ServiceID: service.ID,
		Slots:     slots,
	}, nil
}
