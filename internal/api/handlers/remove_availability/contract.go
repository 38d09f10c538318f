package remove_availability

import (
	"context"

	removeAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/remove_availability"
)

type RemoveAvailabilityUseCase interface {
	Execute(ctx context.Context, req *removeAvailability.Request) (*removeAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
