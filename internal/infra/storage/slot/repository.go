package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

const table = "availability_slots"

// endExpr конец слота, вычисляемый в SQL
const endExpr = "start_at + duration_seconds * INTERVAL '1 second'"

var columns = []string{
	"id",
	"company_id",
	"address_id",
	"start_at",
	"duration_seconds",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetInPeriod возвращает слоты календаря, которые пересекаются с [from, to]
// или касаются его границ, по возрастанию начала.
// Касающиеся слоты нужны планировщику для склейки соседей.
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное
// изменение того же окна дождалось завершения текущего.
func (r *Repository) GetInPeriod(ctx context.Context, scope domain.Scope, from, to time.Time) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"company_id": scope.CompanyID, "address_id": scope.AddressID}).
		Where(squirrel.LtOrEq{"start_at": to}).
		Where(squirrel.Expr(endExpr+" >= ?", from)).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetInPeriod", query, args)
}

// GetByScope возвращает все слоты календаря по возрастанию начала
func (r *Repository) GetByScope(ctx context.Context, scope domain.Scope, limit uint64) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"company_id": scope.CompanyID, "address_id": scope.AddressID}).
		OrderBy("start_at ASC", "id ASC")
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByScope - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetByScope", query, args)
}

// Create сохраняет новый слот
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"company_id",
			"address_id",
			"start_at",
			"duration_seconds",
		).
		Values(
			slot.Scope.CompanyID,
			slot.Scope.AddressID,
			slot.StartAt,
			int64(slot.Duration/time.Second),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// UpdateSpan переносит начало и длительность слота
func (r *Repository) UpdateSpan(ctx context.Context, id int64, span calendar.Span) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_at", span.Start).
		Set("duration_seconds", int64(span.Duration/time.Second)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSpan - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSpan - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSpan - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Apply выполняет команды планировщика строго по порядку.
// Вставка наследует календарь (scope) от Target: для добавления это сам
// кандидат, для разрезания это разрезаемый слот.
// Вызывать внутри транзакции: при ошибке часть команд уже выполнена.
func (r *Repository) Apply(ctx context.Context, cmds []domain.SlotCommand) ([]domain.AppliedCommand, error) {
	applied := make([]domain.AppliedCommand, 0, len(cmds))

	for i, cmd := range cmds {
		var slotID int64

		switch cmd.Verb {
		case calendar.Insert:
			created, err := r.Create(ctx, &domain.AvailabilitySlot{
				Scope:    cmd.Target.Scope,
				StartAt:  cmd.Span.Start,
				Duration: cmd.Span.Duration,
			})
			if err != nil {
				return nil, fmt.Errorf("%w: Apply - command %d (%s)", err, i, cmd)
			}
			slotID = created.ID
		case calendar.Update:
			if err := r.UpdateSpan(ctx, cmd.Target.ID, cmd.Span); err != nil {
				return nil, fmt.Errorf("%w: Apply - command %d (%s)", err, i, cmd)
			}
			slotID = cmd.Target.ID
		case calendar.Delete:
			if err := r.Delete(ctx, cmd.Target.ID); err != nil {
				return nil, fmt.Errorf("%w: Apply - command %d (%s)", err, i, cmd)
			}
			slotID = cmd.Target.ID
		default:
			return nil, fmt.Errorf("%w: Apply - command %d: %s", ErrUnknownVerb, i, cmd.Verb)
		}

		applied = append(applied, domain.AppliedCommand{
			Verb:     cmd.Verb,
			SlotID:   slotID,
			StartAt:  cmd.Span.Start,
			Duration: cmd.Span.Duration,
		})
	}

	return applied, nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.AvailabilitySlot, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.AvailabilitySlot, 0)
	for rows.Next() {
		var (
			s                    domain.AvailabilitySlot
			durationSeconds      int64
			createdAt, updatedAt sql.NullTime
		)
		err := rows.Scan(
			&s.ID,
			&s.Scope.CompanyID,
			&s.Scope.AddressID,
			&s.StartAt,
			&durationSeconds,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}

		s.StartAt = s.StartAt.UTC()
		s.Duration = time.Duration(durationSeconds) * time.Second
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return slots, nil
}

