package add_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	addAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/add_availability"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidAddressID   = "некорректный ID адреса"
	msgMissingUserID      = "не указан ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные интервала"
	msgInvalidTimeSlot    = "начало и длительность должны быть кратны шагу календаря"
	msgTooShort           = "интервал короче минимальной длительности"
	msgInPast             = "интервал начинается в прошлом"
	msgBeyondHorizon      = "интервал выходит за горизонт публикации"
	msgCompanyNotFound    = "компания не найдена"
	msgAddressNotFound    = "адрес не найден"
	msgForbidden          = "доступ запрещен"
	msgCalendarBusy       = "календарь изменяется, повторите запрос"
	msgCalendarCorrupted  = "календарь адреса поврежден, требуется проверка"
)

type Handler struct {
	useCase AddAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AddAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/addresses/{addressId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	addressID, err := strconv.ParseInt(vars["addressId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability - Invalid address ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddressID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, companyID, addressID))
	if err != nil {
		switch {
		case errors.Is(err, addAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, addAvailability.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, addAvailability.ErrTooShort):
			handlers.RespondBadRequest(w, msgTooShort)

		case errors.Is(err, addAvailability.ErrInPast):
			handlers.RespondBadRequest(w, msgInPast)

		case errors.Is(err, addAvailability.ErrBeyondHorizon):
			handlers.RespondBadRequest(w, msgBeyondHorizon)

		case errors.Is(err, addAvailability.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, addAvailability.ErrAddressNotFound):
			handlers.RespondNotFound(w, msgAddressNotFound)

		case errors.Is(err, addAvailability.ErrAccessDenied):
			h.logger.Warn("POST /availability - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, addAvailability.ErrCalendarBusy), errors.Is(err, addAvailability.ErrConflict):
			h.logger.Warn("POST /availability - Calendar busy: company_id=%d, address_id=%d", companyID, addressID)
			handlers.RespondConflict(w, msgCalendarBusy)

		case errors.Is(err, addAvailability.ErrCalendarCorrupted):
			h.logger.Error("POST /availability - Calendar corrupted: company_id=%d, address_id=%d, error=%v",
				companyID, addressID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCalendarCorrupted)

		default:
			h.logger.Error("POST /availability - Failed to add availability: company_id=%d, address_id=%d, error=%v",
				companyID, addressID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Applied %d commands: company_id=%d, address_id=%d",
		len(result.Commands), companyID, addressID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
