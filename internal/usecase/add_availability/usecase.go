package add_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/eventbus"
	sellerClient "github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/locker"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// UseCase use case для добавления интервала доступности в календарь адреса
type UseCase struct {
	slotRepo     SlotRepository
	settingsRepo SettingsRepository
	sellerClient SellerServiceClient
	locker       Locker
	publisher    Publisher
	metrics      MetricsRecorder
	txManager    TransactionManager
	timeProvider TimeProvider
	defaults     Defaults
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	settingsRepo SettingsRepository,
	sellerClient SellerServiceClient,
	locker Locker,
	publisher Publisher,
	metrics MetricsRecorder,
	txManager TransactionManager,
	defaults Defaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		settingsRepo: settingsRepo,
		sellerClient: sellerClient,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		defaults:     defaults,
		logger:       logger,
	}
}

// Execute выполняет use case добавления доступности.
// Соседние и пересекающиеся слоты сливаются с новым интервалом в один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddAvailability: user=%d, company=%d, address=%d, start=%s, duration=%d",
		req.UserID, req.CompanyID, req.AddressID, req.Start.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddAvailability: validation failed: %v", err)
		return nil, err
	}

	scope := domain.Scope{CompanyID: req.CompanyID, AddressID: req.AddressID}
	span := calendar.Span{Start: req.Start, Duration: time.Duration(req.DurationMinutes) * time.Minute}

	// 2. Получаем компанию
	company, err := uc.sellerClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrCompanyNotFound) {
			uc.logger.Warn("AddAvailability: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("AddAvailability: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 3. Проверяем права и адрес
	if !company.IsManager(req.UserID) {
		uc.logger.Warn("AddAvailability: user id=%d is not a manager of company id=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}
	if !company.HasAddress(req.AddressID) {
		uc.logger.Warn("AddAvailability: address id=%d not found in company id=%d", req.AddressID, req.CompanyID)
		return nil, ErrAddressNotFound
	}

	// 4. Получаем настройки календаря с учетом иерархии
	settings, err := uc.settingsRepo.GetWithHierarchy(ctx, req.CompanyID, ptr.Ptr(req.AddressID))
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("AddAvailability: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultSettings(req.CompanyID,
			uc.defaults.StepMinutes, uc.defaults.MinDurationMinutes, uc.defaults.HorizonDays)
		uc.logger.Info("AddAvailability: using default settings for company=%d", req.CompanyID)
	}

	// 5. Проверяем интервал по настройкам
	if err := validateAgainstSettings(span, settings, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("AddAvailability: settings validation failed: %v", err)
		return nil, err
	}

	// 6. Блокируем календарь адреса
	waitStart := time.Now()
	release, err := uc.locker.Acquire(ctx, scope.LockKey())
	if err != nil {
		uc.metrics.LockWaited(time.Since(waitStart), "timeout")
		if errors.Is(err, locker.ErrLockTimeout) {
			uc.logger.Warn("AddAvailability: calendar %s is busy", scope.LockKey())
			return nil, ErrCalendarBusy
		}
		uc.logger.Error("AddAvailability: failed to lock calendar %s: %v", scope.LockKey(), err)
		return nil, fmt.Errorf("%w: failed to lock calendar: %v", ErrInternal, err)
	}
	uc.metrics.LockWaited(time.Since(waitStart), "acquired")
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("AddAvailability: failed to release lock %s: %v", scope.LockKey(), err)
		}
	}()

	var applied []domain.AppliedCommand

	// 7. Планируем и применяем команды в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем слоты, которые касаются интервала, с блокировкой (FOR UPDATE)
		slots, err := uc.slotRepo.GetInPeriod(txCtx, scope, span.Start, span.End())
		if err != nil {
			uc.logger.Error("AddAvailability: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %w", ErrInternal, err)
		}

		cal := calendar.New(slots)

		// 7.2. Проверяем целостность сохраненного календаря
		if err := cal.Validate(); err != nil {
			uc.logger.Error("AddAvailability: calendar %s is inconsistent: %v", scope.LockKey(), err)
			return fmt.Errorf("%w: %v", ErrCalendarCorrupted, err)
		}

		// 7.3. Строим план изменений
		candidate := &domain.AvailabilitySlot{Scope: scope, StartAt: span.Start, Duration: span.Duration}
		cmds, err := cal.PlanAdd(candidate)
		if err != nil {
			uc.logger.Error("AddAvailability: failed to plan: %v", err)
			return fmt.Errorf("%w: failed to plan: %v", ErrInternal, err)
		}

		if len(cmds) == 0 {
			uc.logger.Info("AddAvailability: interval is already available, nothing to do")
			return nil
		}

		// 7.4. Применяем команды
		applied, err = uc.slotRepo.Apply(txCtx, cmds)
		if err != nil {
			uc.logger.Error("AddAvailability: failed to apply %d commands: %v", len(cmds), err)
			return fmt.Errorf("%w: failed to apply commands: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("AddAvailability: serialization conflict on %s: %v", scope.LockKey(), err)
			return nil, ErrConflict
		}
		if errors.Is(err, ErrCalendarCorrupted) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("AddAvailability: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, a := range applied {
		uc.metrics.CommandApplied(string(domain.OperationAdd), a.Verb.String())
	}

	// 8. Публикуем событие (ошибка публикации не отменяет изменения)
	if len(applied) > 0 {
		event := eventbus.NewAvailabilityChanged(scope, domain.OperationAdd, applied, uc.timeProvider.Now())
		if err := uc.publisher.PublishAvailabilityChanged(ctx, event); err != nil {
			uc.logger.Warn("AddAvailability: failed to publish change for %s: %v", scope.LockKey(), err)
		}
	}

	uc.logger.Info("AddAvailability: applied %d commands to %s", len(applied), scope.LockKey())

	return toResponse(scope, applied), nil
}
