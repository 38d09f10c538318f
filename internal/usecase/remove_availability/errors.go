package remove_availability

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("remove_availability: company not found")

	// ErrAddressNotFound возвращается, когда адрес не найден в компании
	ErrAddressNotFound = errors.New("remove_availability: address not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер компании
	ErrAccessDenied = errors.New("remove_availability: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("remove_availability: invalid input data")

	// ErrSlotHasBookings возвращается, когда в удаляемом интервале есть активные бронирования
	ErrSlotHasBookings = errors.New("remove_availability: interval has active bookings")

	// ErrCalendarBusy возвращается, когда календарь заблокирован другим изменением
	ErrCalendarBusy = errors.New("remove_availability: calendar is being modified")

	// ErrCalendarCorrupted возвращается, когда сохраненные слоты нарушают порядок или пересекаются
	ErrCalendarCorrupted = errors.New("remove_availability: stored calendar is inconsistent")

	// ErrConflict возвращается, когда параллельная транзакция изменила те же слоты
	ErrConflict = errors.New("remove_availability: concurrent modification")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("remove_availability: internal error")
)
