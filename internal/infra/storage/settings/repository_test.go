package settings

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestGetWithHierarchy(t *testing.T) {
	addressQuery := regexp.QuoteMeta("FROM calendar_settings WHERE company_id = $1 AND address_id = $2")
	companyQuery := regexp.QuoteMeta("FROM calendar_settings WHERE company_id = $1 AND address_id IS NULL")

	tests := map[string]struct {
		addressID *int64
		setup     func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   error
	}{
		"address level wins": {
			addressID: ptr.Ptr(int64(5)),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(addressQuery).WithArgs(int64(1), int64(5)).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(7, 1, 5, 30, 30, 14, now, now))
			},
			wantID: 7,
		},
		"falls back to company": {
			addressID: ptr.Ptr(int64(5)),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(addressQuery).WillReturnRows(sqlmock.NewRows(columns))
				mock.ExpectQuery(companyQuery).WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(3, 1, nil, 15, 15, 0, now, now))
			},
			wantID: 3,
		},
		"nothing stored": {
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(companyQuery).WillReturnRows(sqlmock.NewRows(columns))
			},
			wantErr: ErrSettingsNotFound,
		},
		"database failure": {
			addressID: ptr.Ptr(int64(5)),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(addressQuery).WillReturnError(errors.New("timeout"))
			},
			wantErr: ErrExecQuery,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setup(mock)

			s, err := repo.GetWithHierarchy(context.Background(), 1, tt.addressID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, s.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetByCompanyAndAddress_ScansNullAddress(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM calendar_settings").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, 1, nil, 15, 30, 60, now, now))

	s, err := repo.GetByCompanyAndAddress(context.Background(), 1, nil)
	require.NoError(t, err)

	assert.Nil(t, s.AddressID)
	assert.True(t, s.IsCompanyWide())
	assert.Equal(t, 15, s.StepMinutes)
	assert.Equal(t, 30, s.MinDurationMinutes)
	assert.Equal(t, 60, s.HorizonDays)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO calendar_settings (company_id,address_id,step_minutes,min_duration_minutes,horizon_days) VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))

	s, err := repo.Create(context.Background(), &domain.CalendarSettings{
		CompanyID:          1,
		AddressID:          ptr.Ptr(int64(5)),
		StepMinutes:        30,
		MinDurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), s.ID)
	assert.Equal(t, now, s.CreatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("UPDATE calendar_settings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Update(context.Background(), 42, &domain.CalendarSettings{StepMinutes: 15})
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("DELETE FROM calendar_settings").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 42), ErrSettingsNotFound)
}
