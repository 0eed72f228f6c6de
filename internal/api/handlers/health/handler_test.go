package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(fakePinger{}, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	NewHandler(fakePinger{err: errors.New("down")}, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
