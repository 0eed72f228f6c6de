package auth

import "errors"

var (
	// ErrMissingFields возвращается, когда не заполнены обязательные поля
	ErrMissingFields = errors.New("all fields are required")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrPasswordTooShort возвращается, когда пароль короче минимальной длины
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrUsernameTooLong возвращается, когда username длиннее допустимого
	ErrUsernameTooLong = errors.New("username is too long")

	// ErrPhoneTooLong возвращается, когда номер телефона длиннее допустимого
	ErrPhoneTooLong = errors.New("phone number is too long")

	// ErrUsernameTaken возвращается, когда username уже занят
	ErrUsernameTaken = errors.New("username already taken")

	// ErrPhoneTaken возвращается, когда номер телефона уже указан в другом профиле
	ErrPhoneTaken = errors.New("phone number already taken")

	// ErrInvalidCredentials возвращается при неверной паре username/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken возвращается для неподписанного, испорченного или просроченного токена
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenRevoked возвращается для токена, отозванного при выходе
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
