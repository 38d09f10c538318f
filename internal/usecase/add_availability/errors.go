package add_availability

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("add_availability: company not found")

	// ErrAddressNotFound возвращается, когда адрес не найден в компании
	ErrAddressNotFound = errors.New("add_availability: address not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер компании
	ErrAccessDenied = errors.New("add_availability: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_availability: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда начало или длительность не кратны шагу календаря
	ErrInvalidTimeSlot = errors.New("add_availability: time is not aligned to calendar step")

	// ErrTooShort возвращается, когда интервал короче минимальной длительности
	ErrTooShort = errors.New("add_availability: duration is shorter than allowed")

	// ErrInPast возвращается, когда интервал начинается в прошлом
	ErrInPast = errors.New("add_availability: interval starts in the past")

	// ErrBeyondHorizon возвращается, когда интервал заканчивается за горизонтом публикации
	ErrBeyondHorizon = errors.New("add_availability: interval ends beyond the horizon")

	// ErrCalendarBusy возвращается, когда календарь заблокирован другим изменением
	ErrCalendarBusy = errors.New("add_availability: calendar is being modified")

	// ErrCalendarCorrupted возвращается, когда сохраненные слоты нарушают порядок или пересекаются
	ErrCalendarCorrupted = errors.New("add_availability: stored calendar is inconsistent")

	// ErrConflict возвращается, когда параллельная транзакция изменила те же слоты
	ErrConflict = errors.New("add_availability: concurrent modification")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_availability: internal error")
)
