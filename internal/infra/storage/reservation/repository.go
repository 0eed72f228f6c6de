package reservation

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

const (
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
)

var reservationColumns = []string{
	"r.id",
	"r.user_id",
	"r.slot_id",
	"r.start_time",
	"r.end_time",
	"r.is_paid",
	"r.carpool_opt_in",
	"r.qr_code",
	"r.created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Пересечение с существующим бронированием того же слота отклоняется ограничением
// reservations_no_overlap и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"slot_id",
			"start_time",
			"end_time",
			"is_paid",
			"carpool_opt_in",
		).
		Values(
			reservation.UserID,
			reservation.SlotID,
			reservation.StartTime,
			reservation.EndTime,
			reservation.IsPaid,
			reservation.CarpoolOptIn,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &reservation.CreatedAt)
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, fmt.Errorf("%w: Create - execute insert: %v", mapped, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return reservation, nil
}

// UpdateQRCode сохраняет отрисованный QR-код бронирования
func (r *Repository) UpdateQRCode(ctx context.Context, id int64, qrCode string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("qr_code", qrCode).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateQRCode - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateQRCode", query, args)
}

// MarkPaid выставляет признак оплаты бронирования
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("is_paid", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "MarkPaid", query, args)
}

// Delete физически удаляет бронирование, платёж удаляется каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{"r.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	err = executor.QueryRowContext(ctx, query, args...).Scan(reservationDest(&reservation)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return &reservation, nil
}

// GetDetailsByID получает бронирование вместе с пользователем, слотом и станцией
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	var details domain.ReservationDetails
	err = executor.QueryRowContext(ctx, query, args...).Scan(detailsDest(&details)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan reservation: %v", ErrScanRow, err)
	}

	return &details, nil
}

// GetOverlappingBySlot возвращает бронирования слота, пересекающиеся с интервалом
// (start_time < window.End AND end_time > window.Start)
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) GetOverlappingBySlot(ctx context.Context, slotID int64, window domain.TimeWindow) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{"r.slot_id": slotID}).
		Where(squirrel.Lt{"r.start_time": window.End}).
		Where(squirrel.Gt{"r.end_time": window.Start}).
		OrderBy("r.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, fmt.Errorf("%w: GetOverlappingBySlot - execute query: %v", mapped, err)
		}
		return nil, fmt.Errorf("%w: GetOverlappingBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		var reservation domain.Reservation
		if err := rows.Scan(reservationDest(&reservation)...); err != nil {
			return nil, fmt.Errorf("%w: GetOverlappingBySlot - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, &reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingBySlot - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// ListOverlappingAtStation возвращает бронирования всех слотов станции,
// пересекающиеся с интервалом, вместе с пользователем и станцией
func (r *Repository) ListOverlappingAtStation(ctx context.Context, stationID int64, window domain.TimeWindow) ([]*domain.ReservationDetails, error) {
	query, args, err := detailsSelect().
		Where(squirrel.Eq{"s.station_id": stationID}).
		Where(squirrel.Lt{"r.start_time": window.End}).
		Where(squirrel.Gt{"r.end_time": window.Start}).
		OrderBy("r.start_time ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlappingAtStation - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, "ListOverlappingAtStation", query, args)
}

// ListDetailsByUser возвращает бронирования пользователя, ближайшие первыми
func (r *Repository) ListDetailsByUser(ctx context.Context, userID int64) ([]*domain.ReservationDetails, error) {
	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.start_time ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetailsByUser - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, "ListDetailsByUser", query, args)
}

// ListCarpoolAtStations возвращает бронирования с согласием на карпулинг
// на указанных станциях, исключая бронирования пользователя excludeUserID
func (r *Repository) ListCarpoolAtStations(ctx context.Context, stationIDs []int64, excludeUserID int64) ([]*domain.ReservationDetails, error) {
	if len(stationIDs) == 0 {
		return make([]*domain.ReservationDetails, 0), nil
	}

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"s.station_id": stationIDs}).
		Where(squirrel.Eq{"r.carpool_opt_in": true}).
		Where(squirrel.NotEq{"r.user_id": excludeUserID}).
		OrderBy("r.start_time ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCarpoolAtStations - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, "ListCarpoolAtStations", query, args)
}

func (r *Repository) queryDetails(ctx context.Context, method, query string, args []interface{}) ([]*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	result := make([]*domain.ReservationDetails, 0)
	for rows.Next() {
		var details domain.ReservationDetails
		if err := rows.Scan(detailsDest(&details)...); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}
		result = append(result, &details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return result, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func detailsSelect() squirrel.SelectBuilder {
	columns := append([]string{}, reservationColumns...)
	columns = append(columns,
		"u.username",
		"u.email",
		"s.slot_number",
		"s.station_id",
		"st.name",
		"st.location",
	)

	return psqlbuilder.Select(columns...).
		From("reservations r").
		Join("users u ON u.id = r.user_id").
		Join("slots s ON s.id = r.slot_id").
		Join("stations st ON st.id = s.station_id")
}

func reservationDest(r *domain.Reservation) []interface{} {
	return []interface{}{
		&r.ID,
		&r.UserID,
		&r.SlotID,
		&r.StartTime,
		&r.EndTime,
		&r.IsPaid,
		&r.CarpoolOptIn,
		&r.QRCode,
		&r.CreatedAt,
	}
}

func detailsDest(d *domain.ReservationDetails) []interface{} {
	return append(reservationDest(&d.Reservation),
		&d.Username,
		&d.UserEmail,
		&d.SlotNumber,
		&d.StationID,
		&d.StationName,
		&d.StationLocation,
	)
}

// mapPQError переводит коды PostgreSQL, значимые для бронирования, в ошибки репозитория
func mapPQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case codeExclusionViolation:
		return ErrOverlap
	case codeSerializationFailure:
		return ErrSerialization
	}
	return nil
}
