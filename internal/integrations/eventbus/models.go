package eventbus

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// AvailabilityChanged сообщение об изменении календаря адреса
type AvailabilityChanged struct {
	MessageID  string           `json:"messageId"`
	CompanyID  int64            `json:"companyId"`
	AddressID  int64            `json:"addressId"`
	Operation  domain.Operation `json:"operation"`
	Commands   []Command        `json:"commands"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// Command примененная команда в сообщении
type Command struct {
	Verb            string    `json:"verb"`
	SlotID          int64     `json:"slotId"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
}

// NewAvailabilityChanged собирает сообщение из примененных команд
func NewAvailabilityChanged(scope domain.Scope, op domain.Operation, applied []domain.AppliedCommand, at time.Time) AvailabilityChanged {
	cmds := make([]Command, 0, len(applied))
	for _, a := range applied {
		cmds = append(cmds, Command{
			Verb:            a.Verb.String(),
			SlotID:          a.SlotID,
			Start:           a.StartAt,
			DurationMinutes: int(a.Duration / time.Minute),
		})
	}
	return AvailabilityChanged{
		CompanyID:  scope.CompanyID,
		AddressID:  scope.AddressID,
		Operation:  op,
		Commands:   cmds,
		OccurredAt: at.UTC(),
	}
}
