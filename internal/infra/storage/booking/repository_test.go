package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
)

func TestGetActiveInPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	scope := domain.Scope{CompanyID: 1, AddressID: 2}
	from := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(3 * time.Hour)

	mock.ExpectQuery(`FROM bookings WHERE address_id = \$1 AND company_id = \$2 AND status NOT IN \(\$3,\$4,\$5\)`).
		WithArgs(int64(2), int64(1), "cancelled_by_user", "cancelled_by_company", "no_show", to, from).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "address_id", "start_at", "duration_minutes", "status"}).
			AddRow(5, 1, 2, from.Add(time.Hour), 45, "confirmed"))

	bookings, err := repo.GetActiveInPeriod(context.Background(), scope, from, to)
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	b := bookings[0]
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.True(t, b.IsActive())
	assert.Equal(t, 45*time.Minute, b.Span().Duration)
	assert.True(t, b.Span().Overlaps(calendar.NewSpan(from, to)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
