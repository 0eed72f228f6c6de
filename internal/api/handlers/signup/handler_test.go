package signup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ChargingService/internal/service/auth"
	"github.com/m04kA/SMC-ChargingService/internal/service/auth/models"
)

type fakeService struct {
	got *models.SignUpRequest
	err error
}

func (s *fakeService) SignUp(_ context.Context, req *models.SignUpRequest) (*models.TokenResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.TokenResponse{AccessToken: "tok", TokenType: "Bearer", UserID: 1, Username: req.Username}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	body := `{"username":"alice","email":"alice@example.com","password":"secret123","phoneNumber":"+100200"}`

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"created", body, nil, http.StatusCreated},
		{"malformed", `{`, nil, http.StatusBadRequest},
		{"missing fields", body, auth.ErrMissingFields, http.StatusBadRequest},
		{"short password", body, auth.ErrPasswordTooShort, http.StatusBadRequest},
		{"username taken", body, auth.ErrUsernameTaken, http.StatusConflict},
		{"phone taken", body, auth.ErrPhoneTaken, http.StatusConflict},
		{"internal", body, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(tt.body))

			NewHandler(svc, nopLogger{}).Handle(w, r)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "+100200", svc.got.PhoneNumber)
				assert.Contains(t, w.Body.String(), `"accessToken":"tok"`)
			}
		})
	}
}
