package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID              string    // uid пользователя
	ServiceID           string    // ID услуги каталога
	AddressID           string    // ID адреса из профиля
	Date                time.Time // Дата уборки (полночь в часовом поясе сервиса)
	SlotStart           string    // Время начала слота, например "10:00"
	RoomCount           int       // Количество комнат
	SpecialInstructions *string   // Пожелания (опционально)
}
