package list_reservations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

type fakeService struct {
	gotUserID int64
	err       error
}

func (s *fakeService) ListForUser(_ context.Context, userID int64) (*models.UserReservationsResponse, error) {
	s.gotUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserReservationsResponse{
		Reservations:      []*models.ReservationResponse{{ID: 1, Username: "alice"}},
		CarpoolCandidates: []*models.ReservationResponse{{ID: 2, Username: "bob", CarpoolOptIn: true}},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func withUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(w, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil), 7))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.gotUserID)
	assert.Contains(t, w.Body.String(), `"carpoolCandidates":[{"id":2`)
}

func TestHandle_Errors(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{}, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("db down")}, nopLogger{}).Handle(w, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil), 7))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
