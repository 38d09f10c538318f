package delete_calendar_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/settings"
	"github.com/m04kA/SMC-CalendarService/internal/service/settings/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidAddressID = "некорректный ID адреса"
	msgMissingUserID    = "не указан ID пользователя"
	msgCompanyNotFound  = "компания не найдена"
	msgAddressNotFound  = "адрес не найден"
	msgNotFound         = "настройки не найдены"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/companies/{companyId}/calendar-settings
// Query params: addressId (опционально, без него удаляются настройки компании)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(mux.Vars(r)["companyId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var addressID *int64
	if s := r.URL.Query().Get("addressId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidAddressID)
			return
		}
		addressID = &id
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteSettingsRequest{UserID: userID, CompanyID: companyID, AddressID: addressID})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrSettingsNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, settings.ErrCompanyNotFound):
			handlers.RespondNotFound(w, msgCompanyNotFound)
		case errors.Is(err, settings.ErrAddressNotFound):
			handlers.RespondNotFound(w, msgAddressNotFound)
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("DELETE /calendar-settings - Access denied: company_id=%d, user_id=%d", companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /calendar-settings - Failed to delete settings: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /calendar-settings - Settings deleted: company_id=%d, address_id=%v", companyID, addressID)
	w.WriteHeader(http.StatusNoContent)
}
