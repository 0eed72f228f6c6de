package signup

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/service/auth/models"
)

type AuthService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.TokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
