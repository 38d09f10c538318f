package remove_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/locker"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

const (
	managerID = int64(100)
	companyID = int64(1)
	addressID = int64(10)
)

func at(hh, mm int) time.Time {
	return time.Date(2030, 1, 2, hh, mm, 0, 0, time.UTC)
}

type fakeSlots struct {
	slots  []*domain.AvailabilitySlot
	getErr error
	nextID int64
	got    []domain.SlotCommand
}

func (f *fakeSlots) GetInPeriod(_ context.Context, _ domain.Scope, _, _ time.Time) ([]*domain.AvailabilitySlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slots, nil
}

func (f *fakeSlots) Apply(_ context.Context, cmds []domain.SlotCommand) ([]domain.AppliedCommand, error) {
	f.got = cmds
	out := make([]domain.AppliedCommand, 0, len(cmds))
	for _, c := range cmds {
		id := c.Target.ID
		if c.Verb == calendar.Insert {
			f.nextID++
			id = f.nextID
		}
		out = append(out, domain.AppliedCommand{Verb: c.Verb, SlotID: id, StartAt: c.Span.Start, Duration: c.Span.Duration})
	}
	return out, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) GetActiveInPeriod(context.Context, domain.Scope, time.Time, time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeSeller struct {
	company *sellerservice.Company
	err     error
}

func (f *fakeSeller) GetCompany(context.Context, int64) (*sellerservice.Company, error) {
	return f.company, f.err
}

type fakeLocker struct {
	err      error
	released int
}

func (f *fakeLocker) Acquire(context.Context, string) (locker.Release, error) {
	if f.err != nil {
		return nil, f.err
	}
	return func(context.Context) error {
		f.released++
		return nil
	}, nil
}

type fakePublisher struct {
	events []eventbus.AvailabilityChanged
}

func (f *fakePublisher) PublishAvailabilityChanged(_ context.Context, e eventbus.AvailabilityChanged) error {
	f.events = append(f.events, e)
	return nil
}

type fakeMetrics struct {
	commands map[string]int
}

func (f *fakeMetrics) CommandApplied(operation, verb string) {
	f.commands[operation+":"+verb]++
}

func (f *fakeMetrics) LockWaited(time.Duration, string) {}

type fakeTx struct {
	err error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type env struct {
	slots     *fakeSlots
	bookings  *fakeBookings
	seller    *fakeSeller
	locker    *fakeLocker
	publisher *fakePublisher
	metrics   *fakeMetrics
	tx        *fakeTx
	uc        *UseCase
}

func newEnv(slots ...*domain.AvailabilitySlot) *env {
	e := &env{
		slots:    &fakeSlots{slots: slots, nextID: 100},
		bookings: &fakeBookings{},
		seller: &fakeSeller{company: &sellerservice.Company{
			ID:         companyID,
			ManagerIDs: []int64{managerID},
			Addresses:  []sellerservice.Address{{ID: addressID}},
		}},
		locker:    &fakeLocker{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{commands: map[string]int{}},
		tx:        &fakeTx{},
	}
	e.uc = NewUseCase(e.slots, e.bookings, e.seller, e.locker, e.publisher, e.metrics, e.tx, logger.Nop())
	return e
}

func slot(id int64, start time.Time, minutes int) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:       id,
		Scope:    domain.Scope{CompanyID: companyID, AddressID: addressID},
		StartAt:  start,
		Duration: time.Duration(minutes) * time.Minute,
	}
}

func booking(start time.Time, minutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: 1, CompanyID: companyID, AddressID: addressID, StartAt: start, DurationMinutes: minutes, Status: status}
}

func request(start time.Time, minutes int) *Request {
	return &Request{UserID: managerID, CompanyID: companyID, AddressID: addressID, Start: start, DurationMinutes: minutes}
}

func TestExecute_SplitsEnclosingSlot(t *testing.T) {
	e := newEnv(slot(1, at(9, 0), 180))

	resp, err := e.uc.Execute(context.Background(), request(at(10, 0), 60))
	require.NoError(t, err)

	assert.Equal(t, []Command{
		{Verb: "update", SlotID: 1, Start: at(9, 0), DurationMinutes: 60},
		{Verb: "insert", SlotID: 101, Start: at(11, 0), DurationMinutes: 60},
	}, resp.Commands)
	assert.Equal(t, domain.Scope{CompanyID: companyID, AddressID: addressID}, e.slots.got[1].Target.Scope)
	require.Len(t, e.publisher.events, 1)
	assert.Equal(t, domain.OperationRemove, e.publisher.events[0].Operation)
	assert.Equal(t, 1, e.locker.released)
}

func TestExecute_TrimsAndDeletes(t *testing.T) {
	e := newEnv(slot(1, at(9, 0), 60), slot(2, at(10, 30), 60), slot(3, at(12, 0), 60))

	resp, err := e.uc.Execute(context.Background(), request(at(9, 30), 180))
	require.NoError(t, err)

	assert.Equal(t, []Command{
		{Verb: "delete", SlotID: 2, Start: at(10, 30), DurationMinutes: 60},
		{Verb: "update", SlotID: 1, Start: at(9, 0), DurationMinutes: 30},
		{Verb: "update", SlotID: 3, Start: at(12, 30), DurationMinutes: 30},
	}, resp.Commands)
	assert.Equal(t, 1, e.metrics.commands["remove:delete"])
	assert.Equal(t, 2, e.metrics.commands["remove:update"])
}

func TestExecute_NothingToRemove(t *testing.T) {
	e := newEnv(slot(1, at(9, 0), 60))

	resp, err := e.uc.Execute(context.Background(), request(at(10, 0), 60))
	require.NoError(t, err)

	assert.Empty(t, resp.Commands)
	assert.Empty(t, e.publisher.events)
}

func TestExecute_BookingsGuard(t *testing.T) {
	tests := map[string]struct {
		bookings []*domain.Booking
		wantErr  error
	}{
		"active booking inside": {
			bookings: []*domain.Booking{booking(at(10, 0), 30, domain.StatusConfirmed)},
			wantErr:  ErrSlotHasBookings,
		},
		"cancelled booking ignored": {
			bookings: []*domain.Booking{booking(at(10, 0), 30, domain.StatusCancelledByUser)},
		},
		"touching booking ignored": {
			bookings: []*domain.Booking{booking(at(9, 30), 30, domain.StatusConfirmed)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEnv(slot(1, at(9, 0), 180))
			e.bookings.bookings = tt.bookings

			_, err := e.uc.Execute(context.Background(), request(at(10, 0), 60))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, e.slots.got)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_Rejections(t *testing.T) {
	tests := map[string]struct {
		req     *Request
		prepare func(e *env)
		wantErr error
	}{
		"missing start": {
			req:     &Request{UserID: managerID, CompanyID: companyID, AddressID: addressID, DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		"company not found": {
			req:     request(at(9, 0), 60),
			prepare: func(e *env) { e.seller.err = sellerservice.ErrCompanyNotFound },
			wantErr: ErrCompanyNotFound,
		},
		"not a manager": {
			req:     &Request{UserID: 7, CompanyID: companyID, AddressID: addressID, Start: at(9, 0), DurationMinutes: 60},
			wantErr: ErrAccessDenied,
		},
		"unknown address": {
			req:     &Request{UserID: managerID, CompanyID: companyID, AddressID: 99, Start: at(9, 0), DurationMinutes: 60},
			wantErr: ErrAddressNotFound,
		},
		"lock timeout": {
			req:     request(at(9, 0), 60),
			prepare: func(e *env) { e.locker.err = locker.ErrLockTimeout },
			wantErr: ErrCalendarBusy,
		},
		"bookings failure": {
			req:     request(at(9, 0), 60),
			prepare: func(e *env) { e.bookings.err = errors.New("db down") },
			wantErr: ErrInternal,
		},
		"corrupted calendar": {
			req: request(at(9, 0), 60),
			prepare: func(e *env) {
				e.slots.slots = []*domain.AvailabilitySlot{slot(1, at(10, 0), 60), slot(2, at(9, 0), 30)}
			},
			wantErr: ErrCalendarCorrupted,
		},
		"serialization conflict": {
			req:     request(at(9, 0), 60),
			prepare: func(e *env) { e.tx.err = txmanager.ErrSerialization },
			wantErr: ErrConflict,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEnv(slot(1, at(9, 0), 60))
			if tt.prepare != nil {
				tt.prepare(e)
			}

			resp, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Empty(t, e.publisher.events)
		})
	}
}
