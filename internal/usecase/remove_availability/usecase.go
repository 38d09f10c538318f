package remove_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/eventbus"
	sellerClient "github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/locker"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// UseCase use case для удаления интервала из календаря адреса
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	sellerClient SellerServiceClient
	locker       Locker
	publisher    Publisher
	metrics      MetricsRecorder
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	sellerClient SellerServiceClient,
	locker Locker,
	publisher Publisher,
	metrics MetricsRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		sellerClient: sellerClient,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case удаления интервала.
// Слоты внутри интервала удаляются, пересекающие обрезаются, охватывающий разбивается на два.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveAvailability: user=%d, company=%d, address=%d, start=%s, duration=%d",
		req.UserID, req.CompanyID, req.AddressID, req.Start.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RemoveAvailability: validation failed: %v", err)
		return nil, err
	}

	scope := domain.Scope{CompanyID: req.CompanyID, AddressID: req.AddressID}
	span := calendar.Span{Start: req.Start, Duration: time.Duration(req.DurationMinutes) * time.Minute}

	// 2. Получаем компанию
	company, err := uc.sellerClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrCompanyNotFound) {
			uc.logger.Warn("RemoveAvailability: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("RemoveAvailability: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 3. Проверяем права и адрес
	if !company.IsManager(req.UserID) {
		uc.logger.Warn("RemoveAvailability: user id=%d is not a manager of company id=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}
	if !company.HasAddress(req.AddressID) {
		uc.logger.Warn("RemoveAvailability: address id=%d not found in company id=%d", req.AddressID, req.CompanyID)
		return nil, ErrAddressNotFound
	}

	// 4. Блокируем календарь адреса
	waitStart := time.Now()
	release, err := uc.locker.Acquire(ctx, scope.LockKey())
	if err != nil {
		uc.metrics.LockWaited(time.Since(waitStart), "timeout")
		if errors.Is(err, locker.ErrLockTimeout) {
			uc.logger.Warn("RemoveAvailability: calendar %s is busy", scope.LockKey())
			return nil, ErrCalendarBusy
		}
		uc.logger.Error("RemoveAvailability: failed to lock calendar %s: %v", scope.LockKey(), err)
		return nil, fmt.Errorf("%w: failed to lock calendar: %v", ErrInternal, err)
	}
	uc.metrics.LockWaited(time.Since(waitStart), "acquired")
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("RemoveAvailability: failed to release lock %s: %v", scope.LockKey(), err)
		}
	}()

	var applied []domain.AppliedCommand

	// 5. Планируем и применяем команды в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверяем, что в интервале нет активных бронирований (FOR SHARE)
		bookings, err := uc.bookingRepo.GetActiveInPeriod(txCtx, scope, span.Start, span.End())
		if err != nil {
			uc.logger.Error("RemoveAvailability: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		if n := countActiveBookings(span.Start, span.End(), bookings); n > 0 {
			uc.logger.Warn("RemoveAvailability: %d active bookings in %s", n, span)
			return ErrSlotHasBookings
		}

		// 5.2. Получаем слоты, пересекающие интервал, с блокировкой (FOR UPDATE)
		slots, err := uc.slotRepo.GetInPeriod(txCtx, scope, span.Start, span.End())
		if err != nil {
			uc.logger.Error("RemoveAvailability: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %w", ErrInternal, err)
		}

		cal := calendar.New(slots)

		// 5.3. Проверяем целостность сохраненного календаря
		if err := cal.Validate(); err != nil {
			uc.logger.Error("RemoveAvailability: calendar %s is inconsistent: %v", scope.LockKey(), err)
			return fmt.Errorf("%w: %v", ErrCalendarCorrupted, err)
		}

		// 5.4. Строим план изменений
		cmds, err := cal.PlanRemove(span)
		if err != nil {
			uc.logger.Error("RemoveAvailability: failed to plan: %v", err)
			return fmt.Errorf("%w: failed to plan: %v", ErrInternal, err)
		}

		if len(cmds) == 0 {
			uc.logger.Info("RemoveAvailability: nothing is available in %s", span)
			return nil
		}

		// 5.5. Применяем команды
		applied, err = uc.slotRepo.Apply(txCtx, cmds)
		if err != nil {
			uc.logger.Error("RemoveAvailability: failed to apply %d commands: %v", len(cmds), err)
			return fmt.Errorf("%w: failed to apply commands: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RemoveAvailability: serialization conflict on %s: %v", scope.LockKey(), err)
			return nil, ErrConflict
		}
		if errors.Is(err, ErrSlotHasBookings) || errors.Is(err, ErrCalendarCorrupted) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("RemoveAvailability: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, a := range applied {
		uc.metrics.CommandApplied(string(domain.OperationRemove), a.Verb.String())
	}

	// 6. Публикуем событие (ошибка публикации не отменяет изменения)
	if len(applied) > 0 {
		event := eventbus.NewAvailabilityChanged(scope, domain.OperationRemove, applied, uc.timeProvider.Now())
		if err := uc.publisher.PublishAvailabilityChanged(ctx, event); err != nil {
			uc.logger.Warn("RemoveAvailability: failed to publish change for %s: %v", scope.LockKey(), err)
		}
	}

	uc.logger.Info("RemoveAvailability: applied %d commands to %s", len(applied), scope.LockKey())

	return toResponse(scope, applied), nil
}
