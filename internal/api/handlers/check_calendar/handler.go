package check_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidAddressID = "некорректный ID адреса"
	msgMissingUserID    = "не указан ID пользователя"
	msgCompanyNotFound  = "компания не найдена"
	msgAddressNotFound  = "адрес не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/addresses/{addressId}/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	addressID, err := strconv.ParseInt(vars["addressId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAddressID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Check(r.Context(), userID, domain.Scope{CompanyID: companyID, AddressID: addressID})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)
		case errors.Is(err, availability.ErrAddressNotFound):
			handlers.RespondNotFound(w, msgAddressNotFound)
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /availability/check - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /availability/check - Failed to check: company_id=%d, address_id=%d, error=%v",
				companyID, addressID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/check - company_id=%d, address_id=%d, valid=%t", companyID, addressID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
