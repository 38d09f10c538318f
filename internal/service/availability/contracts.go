package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
)

// SlotRepository интерфейс чтения слотов доступности
type SlotRepository interface {
	GetInPeriod(ctx context.Context, scope domain.Scope, from, to time.Time) ([]*domain.AvailabilitySlot, error)
	GetByScope(ctx context.Context, scope domain.Scope, limit uint64) ([]*domain.AvailabilitySlot, error)
}

// SellerServiceClient интерфейс клиента для SellerService
type SellerServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*sellerservice.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
