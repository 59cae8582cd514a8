package get_available_slots

import (
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceID string    // ID услуги
	Date      time.Time // Дата (полночь в часовом поясе сервиса)
}

// Response модель ответа со слотами дня
type Response struct {
	Date      time.Time         // Дата, на которую запрашивались слоты
	ServiceID string            // ID услуги
	Slots     []domain.TimeSlot // Слоты по возрастанию времени начала
}
