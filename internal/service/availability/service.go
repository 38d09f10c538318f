package availability

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	sellerClient "github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability/models"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

// Service сервис чтения календаря доступности
type Service struct {
	slotRepo     SlotRepository
	sellerClient SellerServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(slotRepo SlotRepository, sellerClient SellerServiceClient, logger Logger) *Service {
	return &Service{
		slotRepo:     slotRepo,
		sellerClient: sellerClient,
		logger:       logger,
	}
}

// List возвращает слоты адреса, пересекающие [from, to)
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, scope domain.Scope, from, to time.Time) (*models.AvailabilityResponse, error) {
	s.logger.Info("List: company=%d, address=%d, from=%s, to=%s",
		scope.CompanyID, scope.AddressID, from.Format(time.RFC3339), to.Format(time.RFC3339))

	if scope.CompanyID <= 0 || scope.AddressID <= 0 {
		return nil, fmt.Errorf("%w: companyID and addressID must be positive", ErrInvalidInput)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	if to.Sub(from) > domain.MaxListPeriodDays*24*time.Hour {
		return nil, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, domain.MaxListPeriodDays)
	}

	slots, err := s.slotRepo.GetInPeriod(ctx, scope, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// Репозиторий отдает и касающиеся периода слоты, они не доступны в нем
	period := calendar.NewSpan(from, to)
	slots = slices.DeleteFunc(slots, func(sl *domain.AvailabilitySlot) bool {
		return !sl.Span().Overlaps(period)
	})

	s.logger.Info("List: found %d slots", len(slots))
	return &models.AvailabilityResponse{
		CompanyID: scope.CompanyID,
		AddressID: scope.AddressID,
		From:      from,
		To:        to,
		Slots:     models.FromDomainSlots(slots),
	}, nil
}

// Check проверяет, что сохраненные слоты адреса идут по возрастанию,
// не пересекаются и не касаются друг друга.
// Доступно только менеджерам компании
func (s *Service) Check(ctx context.Context, userID int64, scope domain.Scope) (*models.CheckResponse, error) {
	s.logger.Info("Check: company=%d, address=%d by user=%d", scope.CompanyID, scope.AddressID, userID)

	if userID <= 0 || scope.CompanyID <= 0 || scope.AddressID <= 0 {
		return nil, fmt.Errorf("%w: userID, companyID and addressID must be positive", ErrInvalidInput)
	}

	// 1. Проверяем права доступа
	company, err := s.sellerClient.GetCompany(ctx, scope.CompanyID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrCompanyNotFound) {
			s.logger.Warn("Check: company id=%d not found", scope.CompanyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("Check: failed to get company id=%d: %v", scope.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	if !company.IsManager(userID) {
		s.logger.Warn("Check: user=%d is not a manager of company=%d", userID, scope.CompanyID)
		return nil, ErrAccessDenied
	}
	if !company.HasAddress(scope.AddressID) {
		s.logger.Warn("Check: address id=%d not found in company=%d", scope.AddressID, scope.CompanyID)
		return nil, ErrAddressNotFound
	}

	// 2. Читаем слоты (на один больше лимита, чтобы понять, что проверены не все)
	slots, err := s.slotRepo.GetByScope(ctx, scope, domain.MaxCheckedSlotsPerRun+1)
	if err != nil {
		s.logger.Error("Check: repository error: %v", err)
		return nil, fmt.Errorf("%w: Check - repository error: %v", ErrInternal, err)
	}

	resp := &models.CheckResponse{
		CompanyID: scope.CompanyID,
		AddressID: scope.AddressID,
		Valid:     true,
	}
	if len(slots) > domain.MaxCheckedSlotsPerRun {
		slots = slots[:domain.MaxCheckedSlotsPerRun]
		resp.Truncated = true
	}
	resp.Checked = len(slots)

	// 3. Проверяем последовательность
	err = calendar.Validate(slices.Values(slots))
	var invalid *calendar.SequenceInvalidError
	switch {
	case err == nil:
	case errors.As(err, &invalid):
		resp.Valid = false
		resp.Index = ptr.Ptr(invalid.Index)
		if sl := slots[invalid.Index]; sl != nil {
			resp.SlotID = ptr.Ptr(sl.ID)
		}
		resp.Reason = invalid.Reason
		s.logger.Warn("Check: calendar %s is inconsistent: %s", scope.LockKey(), invalid.Reason)
	default:
		s.logger.Error("Check: validation failed: %v", err)
		return nil, fmt.Errorf("%w: Check - validation error: %v", ErrInternal, err)
	}

	s.logger.Info("Check: checked %d slots of %s, valid=%t", resp.Checked, scope.LockKey(), resp.Valid)
	return resp, nil
}
