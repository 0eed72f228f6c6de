package middleware

import "context"

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyToken
	ctxKeyRequestID
)

// WithUserID кладёт ID аутентифицированного пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// GetUserID извлекает ID пользователя, установленный middleware Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKeyUserID).(int64)
	return userID, ok
}

// WithToken кладёт сырой bearer токен в контекст (нужен для logout)
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyToken, token)
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKeyToken).(string)
	return token, ok && token != ""
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
