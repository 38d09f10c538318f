package add_availability

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
	addAvailability "github.com/m04kA/SMC-CalendarService/internal/usecase/add_availability"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

type fakeUseCase struct {
	got  *addAvailability.Request
	resp *addAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *addAvailability.Request) (*addAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRouter(uc *fakeUseCase) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/companies/{companyId}/addresses/{addressId}/availability",
		NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)
	return r
}

func do(r http.Handler, userID, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	start := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &addAvailability.Response{
		CompanyID: 1,
		AddressID: 10,
		Commands:  []addAvailability.Command{{Verb: "insert", SlotID: 5, Start: start, DurationMinutes: 60}},
	}}

	rec := do(newRouter(uc), "100", "/companies/1/addresses/10/availability",
		`{"start":"2030-01-02T09:00:00Z","durationMinutes":60}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(100), uc.got.UserID)
	assert.Equal(t, int64(1), uc.got.CompanyID)
	assert.Equal(t, int64(10), uc.got.AddressID)
	assert.True(t, start.Equal(uc.got.Start))
	assert.Equal(t, 60, uc.got.DurationMinutes)

	var body AddAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Commands, 1)
	assert.Equal(t, "insert", body.Commands[0].Verb)
	assert.Equal(t, int64(5), body.Commands[0].SlotID)
}

func TestHandle_Errors(t *testing.T) {
	tests := map[string]struct {
		userID   string
		path     string
		body     string
		ucErr    error
		wantCode int
	}{
		"missing user":      {path: "/companies/1/addresses/10/availability", body: `{}`, wantCode: http.StatusUnauthorized},
		"bad company id":    {userID: "100", path: "/companies/x/addresses/10/availability", body: `{}`, wantCode: http.StatusBadRequest},
		"bad body":          {userID: "100", path: "/companies/1/addresses/10/availability", body: `{"start":`, wantCode: http.StatusBadRequest},
		"unknown field":     {userID: "100", path: "/companies/1/addresses/10/availability", body: `{"foo":1}`, wantCode: http.StatusBadRequest},
		"misaligned":        {userID: "100", path: "/companies/1/addresses/10/availability", body: `{}`, ucErr: addAvailability.ErrInvalidTimeSlot, wantCode: http.StatusBadRequest},
		"forbidden":         {userID: "100", path: "/companies/1/addresses/10/availability", body: `{}`, ucErr: addAvailability.ErrAccessDenied, wantCode: http.StatusForbidden},
		"company not found": {userID: "100", path: "/companies/1/addresses/10/availability", body: `{}`, ucErr: addAvailability.ErrCompanyNotFound, wantCode: http.StatusNotFound},
		"busy":              {userID: "100", path: "/companies/1/addresses/10/availability", body: `{}`, ucErr: addAvailability.ErrCalendarBusy, wantCode: http.StatusConflict},
		"conflict":          {userID: "100", path: "/companies/1/addresses/10/availability", body: `{}`, ucErr: addAvailability.ErrConflict, wantCode: http.StatusConflict},
		"internal":          {userID: "100", path: "/companies/1/addresses/10/availability", body: `{}`, ucErr: addAvailability.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(newRouter(&fakeUseCase{err: tt.ucErr}), tt.userID, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
