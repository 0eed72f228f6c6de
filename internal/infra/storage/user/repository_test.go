package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users \(username,email,password_hash\) VALUES \(\$1,\$2,\$3\) RETURNING id, created_at`).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	u, err := repo.Create(context.Background(), &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UsernameTaken(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRepository_CreateProfile(t *testing.T) {
	repo, mock := newRepo(t)
	phone := "+15550001"

	mock.ExpectExec(`INSERT INTO profiles \(user_id,phone_number\) VALUES \(\$1,\$2\)`).
		WithArgs(int64(1), phone).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.CreateProfile(context.Background(), &domain.Profile{UserID: 1, PhoneNumber: &phone}))

	mock.ExpectExec(`INSERT INTO profiles`).WillReturnError(&pq.Error{Code: "23505"})
	assert.ErrorIs(t, repo.CreateProfile(context.Background(), &domain.Profile{UserID: 2, PhoneNumber: &phone}), ErrPhoneTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUsername(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, "alice", "alice@example.com", "hash", now))

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	_, err = repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Exists(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE username = \$1\)`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM profiles WHERE phone_number = \$1\)`).
		WithArgs("+15550001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err = repo.PhoneExists(context.Background(), "+15550001")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}
