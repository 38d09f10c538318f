package add_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-CalendarService/pkg/locker"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	GetInPeriod(ctx context.Context, scope domain.Scope, from, to time.Time) ([]*domain.AvailabilitySlot, error)
	Apply(ctx context.Context, cmds []domain.SlotCommand) ([]domain.AppliedCommand, error)
}

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetWithHierarchy(ctx context.Context, companyID int64, addressID *int64) (*domain.CalendarSettings, error)
}

// SellerServiceClient интерфейс клиента для SellerService
type SellerServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*sellerservice.Company, error)
}

// Locker сериализует изменения одного календаря
type Locker interface {
	Acquire(ctx context.Context, key string) (locker.Release, error)
}

// Publisher публикует изменения календаря после фиксации транзакции
type Publisher interface {
	PublishAvailabilityChanged(ctx context.Context, event eventbus.AvailabilityChanged) error
}

// MetricsRecorder метрики операций с календарем
type MetricsRecorder interface {
	CommandApplied(operation, verb string)
	LockWaited(d time.Duration, outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
