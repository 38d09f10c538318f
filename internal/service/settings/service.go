package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
	sellerClient "github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-CalendarService/internal/service/settings/models"
)

// Defaults настройки сервиса, действующие при отсутствии сохраненных
type Defaults struct {
	StepMinutes        int
	MinDurationMinutes int
	HorizonDays        int
}

// Service сервис для работы с настройками календаря
type Service struct {
	settingsRepo SettingsRepository
	sellerClient SellerServiceClient
	defaults     Defaults
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	sellerClient SellerServiceClient,
	defaults Defaults,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		sellerClient: sellerClient,
		defaults:     defaults,
		logger:       logger,
	}
}

// Get получает действующие настройки с учетом иерархии
// Публичный метод - доступен всем
// Приоритет: address > company > defaults
func (s *Service) Get(ctx context.Context, companyID int64, addressID *int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for company=%d, address=%v", companyID, addressID)

	if companyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.GetWithHierarchy(ctx, companyID, addressID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Get: repository error: %v", err)
			return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
		}
		settings = s.defaultSettings(companyID)
	}

	s.logger.Info("Get: settings for company=%d resolved at level %s", companyID, models.Level(settings))
	return models.FromDomainSettings(settings), nil
}

// GetAllByCompany получает все сохраненные настройки компании
// Доступно только менеджерам компании
func (s *Service) GetAllByCompany(ctx context.Context, companyID int64, userID int64) (*models.SettingsListResponse, error) {
	s.logger.Info("GetAllByCompany: fetching settings for company=%d by user=%d", companyID, userID)

	if err := s.authorize(ctx, "GetAllByCompany", companyID, userID, nil); err != nil {
		return nil, err
	}

	list, err := s.settingsRepo.GetAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("GetAllByCompany: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetAllByCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByCompany: found %d settings for company=%d", len(list), companyID)
	return models.FromDomainSettingsList(list), nil
}

// Upsert создает или обновляет настройки на уровне компании или адреса
// Доступно только менеджерам компании
// Возвращает true, если настройки были созданы
func (s *Service) Upsert(ctx context.Context, req *models.UpsertSettingsRequest) (*models.SettingsResponse, bool, error) {
	s.logger.Info("Upsert: settings for company=%d, address=%v by user=%d", req.CompanyID, req.AddressID, req.UserID)

	// 1. Проверяем права доступа и адрес
	if err := s.authorize(ctx, "Upsert", req.CompanyID, req.UserID, req.AddressID); err != nil {
		return nil, false, err
	}

	// 2. Ищем настройки ровно этого уровня
	existing, err := s.settingsRepo.GetByCompanyAndAddress(ctx, req.CompanyID, req.AddressID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("Upsert: failed to get existing settings: %v", err)
		return nil, false, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	// 3. Создаем новые на основе значений по умолчанию
	if existing == nil {
		created := s.defaultSettings(req.CompanyID)
		created.AddressID = req.AddressID
		req.ApplyTo(created)

		if err := validateSettings(created); err != nil {
			s.logger.Warn("Upsert: validation failed: %v", err)
			return nil, false, err
		}

		result, err := s.settingsRepo.Create(ctx, created)
		if err != nil {
			s.logger.Error("Upsert: failed to create settings: %v", err)
			return nil, false, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Upsert: created settings id=%d", result.ID)
		return models.FromDomainSettings(result), true, nil
	}

	// 4. Обновляем существующие
	req.ApplyTo(existing)
	if err := validateSettings(existing); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, false, err
	}

	result, err := s.settingsRepo.Update(ctx, existing.ID, existing)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Upsert: settings id=%d disappeared during update", existing.ID)
			return nil, false, ErrSettingsNotFound
		}
		s.logger.Error("Upsert: failed to update settings id=%d: %v", existing.ID, err)
		return nil, false, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: updated settings id=%d", result.ID)
	return models.FromDomainSettings(result), false, nil
}

// Delete удаляет настройки уровня компании или адреса
// Доступно только менеджерам компании
func (s *Service) Delete(ctx context.Context, req *models.DeleteSettingsRequest) error {
	s.logger.Info("Delete: settings for company=%d, address=%v by user=%d", req.CompanyID, req.AddressID, req.UserID)

	if err := s.authorize(ctx, "Delete", req.CompanyID, req.UserID, req.AddressID); err != nil {
		return err
	}

	existing, err := s.settingsRepo.GetByCompanyAndAddress(ctx, req.CompanyID, req.AddressID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Delete: no settings for company=%d, address=%v", req.CompanyID, req.AddressID)
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.settingsRepo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error for settings id=%d: %v", existing.ID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted settings id=%d", existing.ID)
	return nil
}

// Вспомогательные методы

// authorize проверяет, что пользователь менеджер компании и что адрес (если указан) ей принадлежит
func (s *Service) authorize(ctx context.Context, op string, companyID, userID int64, addressID *int64) error {
	if companyID <= 0 || userID <= 0 {
		return fmt.Errorf("%w: companyID and userID must be positive", ErrInvalidInput)
	}

	company, err := s.sellerClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrCompanyNotFound) {
			s.logger.Warn("%s: company id=%d not found", op, companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("%s: failed to get company id=%d: %v", op, companyID, err)
		return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if !company.IsManager(userID) {
		s.logger.Warn("%s: user=%d is not a manager of company=%d", op, userID, companyID)
		return ErrAccessDenied
	}

	if addressID != nil && !company.HasAddress(*addressID) {
		s.logger.Warn("%s: address id=%d not found in company=%d", op, *addressID, companyID)
		return ErrAddressNotFound
	}

	return nil
}

func (s *Service) defaultSettings(companyID int64) *domain.CalendarSettings {
	return domain.DefaultSettings(companyID, s.defaults.StepMinutes, s.defaults.MinDurationMinutes, s.defaults.HorizonDays)
}

// validateSettings валидирует параметры настроек
func validateSettings(st *domain.CalendarSettings) error {
	if st.StepMinutes < domain.MinStepMinutes || st.StepMinutes > domain.MaxStepMinutes {
		return fmt.Errorf("%w: stepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinStepMinutes, domain.MaxStepMinutes)
	}

	if st.MinDurationMinutes < domain.MinDurationMinutes || st.MinDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: minDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	// Минимальная длительность должна попадать на сетку шага
	if st.MinDurationMinutes%st.StepMinutes != 0 {
		return fmt.Errorf("%w: minDurationMinutes must be a multiple of stepMinutes", ErrInvalidInput)
	}

	if st.HorizonDays < domain.MinHorizonDays || st.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be between %d and %d",
			ErrInvalidInput, domain.MinHorizonDays, domain.MaxHorizonDays)
	}

	return nil
}
