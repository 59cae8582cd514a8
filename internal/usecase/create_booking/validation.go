package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.AddressID) == "" {
		return ErrAddressRequired
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.RoomCount < domain.MinRoomCount || req.RoomCount > domain.MaxRoomCount {
		return fmt.Errorf("%w: roomCount must be between %d and %d", ErrInvalidInput, domain.MinRoomCount, domain.MaxRoomCount)
	}

	if req.SpecialInstructions != nil && len([]rune(*req.SpecialInstructions)) > domain.MaxSpecialInstructionsLength {
		return fmt.Errorf("%w: specialInstructions must be at most %d characters", ErrInvalidInput, domain.MaxSpecialInstructionsLength)
	}

	return nil
}

// slotStartTime переводит "HH:MM" в момент времени в дне date
func slotStartTime(date time.Time, slotStart string) (time.Time, error) {
	t, err := time.Parse(domain.TimeFormat, slotStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid slot start %q, expected HH:MM", ErrInvalidInput, slotStart)
	}

	year, month, day := date.Date()
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// validateRooms проверяет минимум комнат для услуг с ценой за комнату
func validateRooms(service *domain.Service, roomCount int) error {
	if service.PriceUnit == domain.PricePerRoom && roomCount < service.MinimumRooms {
		return fmt.Errorf("%w: at least %d rooms required", ErrTooFewRooms, service.MinimumRooms)
	}
	return nil
}

// normalizeInstructions убирает пустые пожелания
func normalizeInstructions(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
