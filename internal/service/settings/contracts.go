package settings

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
)

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	Create(ctx context.Context, s *domain.CalendarSettings) (*domain.CalendarSettings, error)
	GetByCompanyAndAddress(ctx context.Context, companyID int64, addressID *int64) (*domain.CalendarSettings, error)
	GetWithHierarchy(ctx context.Context, companyID int64, addressID *int64) (*domain.CalendarSettings, error)
	GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.CalendarSettings, error)
	Update(ctx context.Context, id int64, s *domain.CalendarSettings) (*domain.CalendarSettings, error)
	Delete(ctx context.Context, id int64) error
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
