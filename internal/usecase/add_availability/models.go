package add_availability

import "time"

// Request модель запроса на добавление доступности
type Request struct {
	UserID          int64     // ID менеджера (Telegram ID)
	CompanyID       int64     // ID компании
	AddressID       int64     // ID адреса компании
	Start           time.Time // Начало интервала
	DurationMinutes int       // Длительность в минутах
}

// Response модель ответа: что было записано в календарь
type Response struct {
	CompanyID int64
	AddressID int64
	Commands  []Command
}

// Command примененная команда
type Command struct {
	Verb            string    // insert | update | delete
	SlotID          int64     // ID затронутого слота
	Start           time.Time // Начало слота после команды (для delete: удаленного)
	DurationMinutes int
}

// Defaults настройки календаря, если у компании нет своих
type Defaults struct {
	StepMinutes        int
	MinDurationMinutes int
	HorizonDays        int
}
