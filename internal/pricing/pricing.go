package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var minutesPerHour = decimal.NewFromInt(60)

// ComputePrice рассчитывает итоговую стоимость услуги
//   - perRoom: базовая цена × max(комнаты, минимум комнат)
//   - perHour: базовая цена × длительность в часах
//   - fixed:   базовая цена
//
// Для неизвестной единицы возвращается базовая цена
func ComputePrice(service domain.Service, numberOfRooms int) decimal.Decimal {
	switch service.PriceUnit {
	case domain.PricePerRoom:
		rooms := numberOfRooms
		if rooms < service.MinimumRooms {
			rooms = service.MinimumRooms
		}
		return service.BasePrice.Mul(decimal.NewFromInt(int64(rooms)))
	case domain.PricePerHour:
		hours := decimal.NewFromInt(int64(service.EstimatedDurationMinutes)).Div(minutesPerHour)
		return service.BasePrice.Mul(hours)
	default:
		return service.BasePrice
	}
}

// AvailableSlots возвращает слоты дня: по одному на каждый час начала с 08:00 по 20:00 включительно,
// каждый длиной 2 часа, все доступны. Слоты строятся в часовом поясе date.
// Результат зависит только от даты (услуга пока не влияет на сетку)
func AvailableSlots(date time.Time, _ domain.Service) []domain.TimeSlot {
	year, month, day := date.Date()
	loc := date.Location()

	slots := make([]domain.TimeSlot, 0, domain.WorkdayLastSlotHour-domain.WorkdayFirstSlotHour+1)
	for hour := domain.WorkdayFirstSlotHour; hour <= domain.WorkdayLastSlotHour; hour++ {
		start := time.Date(year, month, day, hour, 0, 0, 0, loc)
		slots = append(slots, domain.TimeSlot{
			Start:       start,
			End:         start.Add(domain.SlotLength),
			IsAvailable: true,
		})
	}
	return slots
}

// FindSlot ищет слот дня, начинающийся в start
func FindSlot(date time.Time, service domain.Service, start time.Time) (domain.TimeSlot, bool) {
	for _, slot := range AvailableSlots(date, service) {
		if slot.Start.Equal(start) {
			return slot, true
		}
	}
	return domain.TimeSlot{}, false
}
