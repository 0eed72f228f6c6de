package domain

import "time"

// User зарегистрированный пользователь
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile профиль пользователя (один к одному), телефон уникален
type Profile struct {
	UserID      int64
	PhoneNumber *string
}
