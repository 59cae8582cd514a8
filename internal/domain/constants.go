package domain

import "time"

// Рабочие часы: первый и последний час начала слота (включительно)
const (
	WorkdayFirstSlotHour = 8
	WorkdayLastSlotHour  = 20
	SlotLength           = 2 * time.Hour
)

// Ограничения бронирования
const (
	MinRoomCount                 = 1
	MaxRoomCount                 = 10
	MaxSpecialInstructionsLength = 500
)

// Currency валюта всех платежей
const Currency = "usd"

// Форматы дат и времени в API
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
