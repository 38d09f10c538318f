package update_calendar_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/settings"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgMissingUserID      = "не указан ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные настроек"
	msgCompanyNotFound    = "компания не найдена"
	msgAddressNotFound    = "адрес не найден"
	msgNotFound           = "настройки не найдены"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/companies/{companyId}/calendar-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(mux.Vars(r)["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /calendar-settings - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateCalendarSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendar-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, created, err := h.service.Upsert(r.Context(), req.ToServiceRequest(userID, companyID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /calendar-settings - Invalid data: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, settings.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, settings.ErrAddressNotFound):
			handlers.RespondNotFound(w, msgAddressNotFound)

		case errors.Is(err, settings.ErrSettingsNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /calendar-settings - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /calendar-settings - Failed to update settings: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.logger.Info("PUT /calendar-settings - Settings saved: company_id=%d, settings_id=%d, created=%t",
		companyID, result.ID, created)
	handlers.RespondJSON(w, status, result)
}
