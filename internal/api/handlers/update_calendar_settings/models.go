package update_calendar_settings

import (
	"github.com/m04kA/SMC-CalendarService/internal/service/settings/models"
)

// UpdateCalendarSettingsRequest HTTP request model
type UpdateCalendarSettingsRequest struct {
	AddressID          *int64 `json:"addressId,omitempty"`
	StepMinutes        *int   `json:"stepMinutes,omitempty"`
	MinDurationMinutes *int   `json:"minDurationMinutes,omitempty"`
	HorizonDays        *int   `json:"horizonDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateCalendarSettingsRequest) ToServiceRequest(userID, companyID int64) *models.UpsertSettingsRequest {
	return &models.UpsertSettingsRequest{
		UserID:             userID,
		CompanyID:          companyID,
		AddressID:          r.AddressID,
		StepMinutes:        r.StepMinutes,
		MinDurationMinutes: r.MinDurationMinutes,
		HorizonDays:        r.HorizonDays,
	}
}
