package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

const table = "calendar_settings"

var columns = []string{
	"id",
	"company_id",
	"address_id",
	"step_minutes",
	"min_duration_minutes",
	"horizon_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новые настройки
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, s *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"company_id",
			"address_id",
			"step_minutes",
			"min_duration_minutes",
			"horizon_days",
		).
		Values(
			s.CompanyID,
			s.AddressID,
			s.StepMinutes,
			s.MinDurationMinutes,
			s.HorizonDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByCompanyAndAddress получает настройки ровно одного уровня:
// адреса (addressID != nil) или всей компании (addressID == nil)
func (r *Repository) GetByCompanyAndAddress(ctx context.Context, companyID int64, addressID *int64) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"company_id": companyID})

	// Фильтрация по address_id (NULL или конкретное значение)
	if addressID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"address_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"address_id": *addressID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndAddress - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndAddress - scan settings: %w", ErrScanRow, err)
	}

	return s, nil
}

// GetWithHierarchy получает настройки с учетом приоритета:
// 1. Настройки конкретного адреса (addressID)
// 2. Настройки всей компании (NULL)
//
// Если настройки не найдены ни на одном уровне, возвращает ErrSettingsNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, companyID int64, addressID *int64) (*domain.CalendarSettings, error) {
	// 1. Пробуем получить настройки адреса
	if addressID != nil {
		s, err := r.GetByCompanyAndAddress(ctx, companyID, addressID)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrSettingsNotFound) {
			return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (address): %w", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить настройки компании
	s, err := r.GetByCompanyAndAddress(ctx, companyID, nil)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (company): %w", ErrExecQuery, err)
	}

	return nil, ErrSettingsNotFound
}

// GetAllByCompany получает все настройки компании, настройки компании первыми
func (r *Repository) GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("address_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.CalendarSettings, 0)
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByCompany - scan row: %w", ErrScanRow, err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет настройки по ID
func (r *Repository) Update(ctx context.Context, id int64, s *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("step_minutes", s.StepMinutes).
		Set("min_duration_minutes", s.MinDurationMinutes).
		Set("horizon_days", s.HorizonDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	s.ID = id
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Delete удаляет настройки по ID
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
		return ErrSettingsNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettings(row rowScanner) (*domain.CalendarSettings, error) {
	var s domain.CalendarSettings
	var addressID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.CompanyID,
		&addressID,
		&s.StepMinutes,
		&s.MinDurationMinutes,
		&s.HorizonDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if addressID.Valid {
		s.AddressID = &addressID.Int64
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
