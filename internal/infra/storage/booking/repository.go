package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

// Таблица bookings принадлежит сервису бронирований, здесь только чтение.
// Дата и время бронирования хранятся раздельно и считаются временем UTC.
const (
	startExpr = "(booking_date + start_time)"
	endExpr   = "(booking_date + start_time + duration_minutes * INTERVAL '1 minute')"
)

// Repository репозиторий бронирований (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveInPeriod получает активные бронирования адреса, пересекающиеся с [from, to)
// Внутри транзакции строки блокируются на чтение (FOR SHARE), чтобы бронирование
// не изменилось, пока удаляется доступность под ним.
func (r *Repository) GetActiveInPeriod(ctx context.Context, scope domain.Scope, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactive := make([]string, 0, len(domain.InactiveStatuses))
	for _, s := range domain.InactiveStatuses {
		inactive = append(inactive, string(s))
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"company_id",
		"address_id",
		startExpr+" AS start_at",
		"duration_minutes",
		"status",
	).
		From("bookings").
		Where(squirrel.Eq{"company_id": scope.CompanyID, "address_id": scope.AddressID}).
		Where(squirrel.NotEq{"status": inactive}).
		Where(squirrel.Expr(startExpr+" < ?", to.UTC())).
		Where(squirrel.Expr(endExpr+" > ?", from.UTC())).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInPeriod - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		err := rows.Scan(
			&b.ID,
			&b.CompanyID,
			&b.AddressID,
			&b.StartAt,
			&b.DurationMinutes,
			&b.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveInPeriod - scan row: %w", ErrScanRow, err)
		}
		b.StartAt = b.StartAt.UTC()
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveInPeriod - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
