package models

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// SlotResponse слот доступности
type SlotResponse struct {
	ID              int64     `json:"id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}

// AvailabilityResponse доступность адреса за период
type AvailabilityResponse struct {
	CompanyID int64          `json:"companyId"`
	AddressID int64          `json:"addressId"`
	From      time.Time      `json:"from"`
	To        time.Time      `json:"to"`
	Slots     []SlotResponse `json:"slots"`
}

// CheckResponse результат проверки целостности календаря
type CheckResponse struct {
	CompanyID int64  `json:"companyId"`
	AddressID int64  `json:"addressId"`
	Valid     bool   `json:"valid"`
	Checked   int    `json:"checked"`
	Truncated bool   `json:"truncated"`        // проверены не все слоты
	Index     *int   `json:"index,omitempty"`  // позиция первого нарушения
	SlotID    *int64 `json:"slotId,omitempty"` // слот, нарушающий порядок
	Reason    string `json:"reason,omitempty"`
}

// FromDomainSlots конвертирует слоты в DTO
func FromDomainSlots(slots []*domain.AvailabilitySlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			ID:              s.ID,
			Start:           s.StartAt,
			End:             s.EndAt(),
			DurationMinutes: s.DurationMinutes(),
		})
	}
	return out
}
