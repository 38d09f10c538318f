package add_availability

import (
	"time"

	addAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/add_availability"
)

// AddAvailabilityRequest HTTP request model
type AddAvailabilityRequest struct {
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

// AddAvailabilityResponse HTTP response model
type AddAvailabilityResponse struct {
	CompanyID int64             `json:"companyId"`
	AddressID int64             `json:"addressId"`
	Commands  []CommandResponse `json:"commands"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddAvailabilityRequest) ToUseCaseRequest(userID, companyID, addressID int64) *addAvailability.Request {
	return &addAvailability.Request{
		UserID:          userID,
		CompanyID:       companyID,
		AddressID:       addressID,
		Start:           r.Start,
		DurationMinutes: r.DurationMinutes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *addAvailability.Response) *AddAvailabilityResponse {
	cmds := make([]CommandResponse, 0, len(resp.Commands))
	for _, c := range resp.Commands {
		cmds = append(cmds, CommandResponse{
			Verb:            c.Verb,
			SlotID:          c.SlotID,
			Start:           c.Start,
			DurationMinutes: c.DurationMinutes,
		})
	}
	return &AddAvailabilityResponse{
		CompanyID: resp.CompanyID,
		AddressID: resp.AddressID,
		Commands:  cmds,
	}
}
