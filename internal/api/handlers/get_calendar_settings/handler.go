package get_calendar_settings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidAddressID = "некорректный ID адреса"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/calendar-settings
// Query params: addressId (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(mux.Vars(r)["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendar-settings - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var addressID *int64
	if s := r.URL.Query().Get("addressId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.logger.Warn("GET /calendar-settings - Invalid address ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAddressID)
			return
		}
		addressID = &id
	}

	// Сервис возвращает значения по умолчанию, если настроек нет
	result, err := h.service.Get(r.Context(), companyID, addressID)
	if err != nil {
		h.logger.Error("GET /calendar-settings - Failed to get settings: company_id=%d, error=%v", companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
