package remove_availability

import (
	"time"

	removeAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/remove_availability"
)

// RemoveAvailabilityRequest HTTP request model
type RemoveAvailabilityRequest struct {
	Start           time.Time `json:"start"` // RFC3339
	DurationMinutes int       `json:"durationMinutes"`
}

// CommandResponse примененная команда
type CommandResponse struct {
	Verb            string    `json:"verb"`
	SlotID          int64     `json:"slotId"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
}

// RemoveAvailabilityResponse HTTP response model
type RemoveAvailabilityResponse struct {
	CompanyID int64             `json:"companyId"`
	AddressID int64             `json:"addressId"`
	Commands  []CommandResponse `json:"commands"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RemoveAvailabilityRequest) ToUseCaseRequest(userID, companyID, addressID int64) *removeAvailability.Request {
	return &removeAvailability.Request{
		UserID:          userID,
		CompanyID:       companyID,
		AddressID:       addressID,
		Start:           r.Start,
		DurationMinutes: r.DurationMinutes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *removeAvailability.Response) *RemoveAvailabilityResponse {
	cmds := make([]CommandResponse, 0, len(resp.Commands))
	for _, c := range resp.Commands {
		cmds = append(cmds, CommandResponse{
			Verb:            c.Verb,
			SlotID:          c.SlotID,
			Start:           c.Start,
			DurationMinutes: c.DurationMinutes,
		})
	}
	return &RemoveAvailabilityResponse{
		CompanyID: resp.CompanyID,
		AddressID: resp.AddressID,
		Commands:  cmds,
	}
}
