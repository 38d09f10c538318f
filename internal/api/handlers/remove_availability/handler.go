package remove_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	removeAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/remove_availability"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidAddressID   = "некорректный ID адреса"
	msgMissingUserID      = "не указан ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные интервала"
	msgHasBookings        = "в интервале есть активные бронирования"
	msgCompanyNotFound    = "компания не найдена"
	msgAddressNotFound    = "адрес не найден"
	msgForbidden          = "доступ запрещен"
	msgCalendarBusy       = "календарь изменяется, повторите запрос"
	msgCalendarCorrupted  = "календарь адреса поврежден, требуется проверка"
)

type Handler struct {
	useCase RemoveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase RemoveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/addresses/{addressId}/availability/remove
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability/remove - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	addressID, err := strconv.ParseInt(vars["addressId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability/remove - Invalid address ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddressID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability/remove - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RemoveAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/remove - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, companyID, addressID))
	if err != nil {
		switch {
		case errors.Is(err, removeAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/remove - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, removeAvailability.ErrSlotHasBookings):
			h.logger.Warn("POST /availability/remove - Interval has bookings: company_id=%d, address_id=%d",
				companyID, addressID)
			handlers.RespondConflict(w, msgHasBookings)

		case errors.Is(err, removeAvailability.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, removeAvailability.ErrAddressNotFound):
			handlers.RespondNotFound(w, msgAddressNotFound)

		case errors.Is(err, removeAvailability.ErrAccessDenied):
			h.logger.Warn("POST /availability/remove - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, removeAvailability.ErrCalendarBusy), errors.Is(err, removeAvailability.ErrConflict):
			handlers.RespondConflict(w, msgCalendarBusy)

		case errors.Is(err, removeAvailability.ErrCalendarCorrupted):
			h.logger.Error("POST /availability/remove - Calendar corrupted: company_id=%d, address_id=%d, error=%v",
				companyID, addressID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCalendarCorrupted)

		default:
			h.logger.Error("POST /availability/remove - Failed to remove availability: company_id=%d, address_id=%d, error=%v",
				companyID, addressID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/remove - Applied %d commands: company_id=%d, address_id=%d",
		len(result.Commands), companyID, addressID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
