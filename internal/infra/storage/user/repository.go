package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChargingService/pkg/psqlbuilder"
)

const codeUniqueViolation = "23505"

// Repository репозиторий пользователей и профилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return user, nil
}

// CreateProfile создает профиль пользователя
func (r *Repository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("profiles").
		Columns("user_id", "phone_number").
		Values(profile.UserID, profile.PhoneNumber).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateProfile - build insert query: %v", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return ErrPhoneTaken
	}
	if err != nil {
		return fmt.Errorf("%w: CreateProfile - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUsername получает пользователя по username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "GetByUsername", squirrel.Eq{"username": username})
}

// ExistsByUsername проверяет, занят ли username
func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "ExistsByUsername", "users", squirrel.Eq{"username": username})
}

// PhoneExists проверяет, указан ли номер телефона в чьём-либо профиле
func (r *Repository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "PhoneExists", "profiles", squirrel.Eq{"phone_number": phone})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "username", "email", "password_hash", "created_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var user domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, method, err)
	}

	return &user, nil
}

func (r *Repository) exists(ctx context.Context, method, table string, where squirrel.Eq) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sub, subArgs, err := psqlbuilder.Select("1").From(table).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build subquery: %v", ErrBuildQuery, method, err)
	}

	var exists bool
	err = executor.QueryRowContext(ctx, "SELECT EXISTS ("+sub+")", subArgs...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: %s - scan exists: %v", ErrScanRow, method, err)
	}

	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}
