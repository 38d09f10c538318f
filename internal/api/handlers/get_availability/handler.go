package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidAddressID = "некорректный ID адреса"
	msgMissingPeriod    = "параметры from и to обязательны"
	msgInvalidPeriod    = "некорректный формат периода, ожидается RFC3339"
	msgInvalidInput     = "некорректный период"
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

// Handle GET /api/v1/companies/{companyId}/addresses/{addressId}/availability
// Query params: from, to (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	addressID, err := strconv.ParseInt(vars["addressId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid address ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddressID)
		return
	}

	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	scope := domain.Scope{CompanyID: companyID, AddressID: addressID}
	result, err := h.service.List(r.Context(), scope, from, to)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /availability - Failed to list: company_id=%d, address_id=%d, error=%v",
			companyID, addressID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
