package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/pkg/dbmetrics"
)

var (
	reservationRowColumns = []string{"id", "user_id", "slot_id", "start_time", "end_time", "is_paid", "carpool_opt_in", "qr_code", "created_at"}
	detailsRowColumns     = append(append([]string{}, reservationRowColumns...), "username", "email", "slot_number", "station_id", "name", "location")
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 20, hour, minute, 0, 0, time.UTC)
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	created := at(8, 0)

	mock.ExpectQuery(`INSERT INTO reservations \(user_id,slot_id,start_time,end_time,is_paid,carpool_opt_in\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) RETURNING id, created_at`).
		WithArgs(int64(1), int64(10), at(10, 0), at(11, 0), false, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, created))

	res, err := repo.Create(context.Background(), &domain.Reservation{
		UserID:       1,
		SlotID:       10,
		StartTime:    at(10, 0),
		EndTime:      at(11, 0),
		CarpoolOptIn: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.ID)
	assert.Equal(t, created, res.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_MapsConstraintErrors(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
		want error
	}{
		{"exclusion violation", "23P01", ErrOverlap},
		{"serialization failure", "40001", ErrSerialization},
		{"other", "23503", ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			mock.ExpectQuery(`INSERT INTO reservations`).
				WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), &domain.Reservation{UserID: 1, SlotID: 10, StartTime: at(10, 0), EndTime: at(11, 0)})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	qr := "cXI="

	mock.ExpectQuery(`SELECT r.id, r.user_id, .* FROM reservations r WHERE r.id = \$1$`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns).
			AddRow(42, 1, 10, at(10, 0), at(11, 0), false, true, qr, at(8, 0)))

	res, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.SlotID)
	require.NotNil(t, res.QRCode)
	assert.Equal(t, qr, *res.QRCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	mock.ExpectQuery(`FROM reservations r WHERE r.id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns))

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetOverlappingBySlot(t *testing.T) {
	repo, mock := newRepo(t)
	window := domain.TimeWindow{Start: at(10, 30), End: at(11, 30)}

	mock.ExpectQuery(`WHERE r.slot_id = \$1 AND r.start_time < \$2 AND r.end_time > \$3 ORDER BY r.start_time ASC`).
		WithArgs(int64(10), window.End, window.Start).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns).
			AddRow(1, 1, 10, at(10, 0), at(11, 0), false, false, nil, at(8, 0)))

	got, err := repo.GetOverlappingBySlot(context.Background(), 10, window)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].QRCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOverlappingAtStation(t *testing.T) {
	repo, mock := newRepo(t)
	window := domain.TimeWindow{Start: at(9, 0), End: at(10, 0)}

	mock.ExpectQuery(`JOIN users u ON u.id = r.user_id JOIN slots s ON s.id = r.slot_id JOIN stations st ON st.id = s.station_id WHERE s.station_id = \$1 AND r.start_time < \$2 AND r.end_time > \$3`).
		WithArgs(int64(1), window.End, window.Start).
		WillReturnRows(sqlmock.NewRows(detailsRowColumns).
			AddRow(2, 2, 11, at(9, 30), at(9, 45), false, true, nil, at(8, 0), "u2", "u2@example.com", 2, 1, "Downtown", "Main st. 1"))

	got, err := repo.ListOverlappingAtStation(context.Background(), 1, window)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].Username)
	assert.Equal(t, int64(1), got[0].StationID)
	assert.True(t, got[0].CarpoolOptIn)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListCarpoolAtStations(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`WHERE s.station_id IN \(\$1,\$2\) AND r.carpool_opt_in = \$3 AND r.user_id <> \$4`).
		WithArgs(int64(1), int64(2), true, int64(7)).
		WillReturnRows(sqlmock.NewRows(detailsRowColumns))

	got, err := repo.ListCarpoolAtStations(context.Background(), []int64{1, 2}, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListCarpoolAtStations_NoStations(t *testing.T) {
	repo, mock := newRepo(t)

	got, err := repo.ListCarpoolAtStations(context.Background(), nil, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM reservations WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 42))

	mock.ExpectExec(`DELETE FROM reservations WHERE id = \$1`).
		WithArgs(int64(43)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 43), ErrReservationNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaidAndQRCode(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE reservations SET is_paid = \$1 WHERE id = \$2`).
		WithArgs(true, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkPaid(context.Background(), 42))

	mock.ExpectExec(`UPDATE reservations SET qr_code = \$1 WHERE id = \$2`).
		WithArgs("cXI=", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateQRCode(context.Background(), 42, "cXI="))

	require.NoError(t, mock.ExpectationsWereMet())
}
