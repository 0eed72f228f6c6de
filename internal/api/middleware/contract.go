package middleware

import "context"

// TokenVerifier проверка access токена (service/auth)
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
