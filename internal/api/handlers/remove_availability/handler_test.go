package remove_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	removeAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/remove_availability"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

const path = "/companies/1/addresses/10/availability/remove"

type fakeUseCase struct {
	got  *removeAvailability.Request
	resp *removeAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *removeAvailability.Request) (*removeAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/companies/{companyId}/addresses/{addressId}/availability/remove",
		NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "100")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Split(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2030, 1, 2, h, 0, 0, 0, time.UTC) }
	uc := &fakeUseCase{resp: &removeAvailability.Response{
		CompanyID: 1,
		AddressID: 10,
		Commands: []removeAvailability.Command{
			{Verb: "update", SlotID: 1, Start: at(9), DurationMinutes: 60},
			{Verb: "insert", SlotID: 2, Start: at(11), DurationMinutes: 60},
		},
	}}

	rec := serve(uc, `{"start":"2030-01-02T10:00:00Z","durationMinutes":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, at(10).Equal(uc.got.Start))
	assert.Equal(t, 60, uc.got.DurationMinutes)

	var body RemoveAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Commands, 2)
	assert.Equal(t, "update", body.Commands[0].Verb)
	assert.Equal(t, "insert", body.Commands[1].Verb)
	assert.Equal(t, int64(2), body.Commands[1].SlotID)
}

func TestHandle_Errors(t *testing.T) {
	tests := map[string]struct {
		err      error
		wantCode int
	}{
		"has bookings": {err: removeAvailability.ErrSlotHasBookings, wantCode: http.StatusConflict},
		"busy":         {err: removeAvailability.ErrCalendarBusy, wantCode: http.StatusConflict},
		"invalid":      {err: removeAvailability.ErrInvalidInput, wantCode: http.StatusBadRequest},
		"forbidden":    {err: removeAvailability.ErrAccessDenied, wantCode: http.StatusForbidden},
		"no address":   {err: removeAvailability.ErrAddressNotFound, wantCode: http.StatusNotFound},
		"corrupted":    {err: removeAvailability.ErrCalendarCorrupted, wantCode: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, `{"start":"2030-01-02T10:00:00Z","durationMinutes":60}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
