package remove_availability

import "time"

// Request модель запроса на удаление интервала из календаря
type Request struct {
	UserID          int64     // ID менеджера (Telegram ID)
	CompanyID       int64     // ID компании
	AddressID       int64     // ID адреса компании
	Start           time.Time // Начало удаляемого интервала
	DurationMinutes int       // Длительность в минутах
}

// Response модель ответа: что было изменено в календаре
type Response struct {
	CompanyID int64
	AddressID int64
	Commands  []Command
}

// Command примененная команда
type Command struct {
	Verb            string
	SlotID          int64
	Start           time.Time
	DurationMinutes int
}
