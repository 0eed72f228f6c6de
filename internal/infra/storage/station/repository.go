package station

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChargingService/pkg/psqlbuilder"
)

// Repository репозиторий станций и слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWithSlots возвращает все станции с их слотами
// Станции упорядочены по названию, слоты по номеру
func (r *Repository) ListWithSlots(ctx context.Context) ([]*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "location", "total_slots").
		From("stations").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithSlots - build stations query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithSlots - execute stations query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	byID := make(map[int64]*domain.Station)
	for rows.Next() {
		st := &domain.Station{Slots: make([]*domain.Slot, 0)}
		if err := rows.Scan(&st.ID, &st.Name, &st.Location, &st.TotalSlots); err != nil {
			return nil, fmt.Errorf("%w: ListWithSlots - scan station: %v", ErrScanRow, err)
		}
		stations = append(stations, st)
		byID[st.ID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithSlots - stations rows error: %v", ErrScanRow, err)
	}

	if len(stations) == 0 {
		return stations, nil
	}

	query, args, err = psqlbuilder.Select("id", "station_id", "slot_number", "is_available").
		From("slots").
		OrderBy("station_id ASC", "slot_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithSlots - build slots query: %v", ErrBuildQuery, err)
	}

	slotRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithSlots - execute slots query: %v", ErrExecQuery, err)
	}
	defer slotRows.Close()

	for slotRows.Next() {
		var slot domain.Slot
		if err := slotRows.Scan(&slot.ID, &slot.StationID, &slot.SlotNumber, &slot.IsAvailable); err != nil {
			return nil, fmt.Errorf("%w: ListWithSlots - scan slot: %v", ErrScanRow, err)
		}
		if st, ok := byID[slot.StationID]; ok {
			st.Slots = append(st.Slots, &slot)
		}
	}
	if err := slotRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithSlots - slots rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}

// GetSlotWithStation получает слот вместе с его станцией
func (r *Repository) GetSlotWithStation(ctx context.Context, slotID int64) (*domain.SlotWithStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := slotWithStationSelect().
		Where(squirrel.Eq{"s.id": slotID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotWithStation - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.SlotWithStation
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.StationID,
		&slot.SlotNumber,
		&slot.IsAvailable,
		&slot.StationName,
		&slot.StationLocation,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotWithStation - scan slot: %v", ErrScanRow, err)
	}

	return &slot, nil
}

// ListBookableSlots возвращает слоты, которые показываются в форме бронирования:
// отмеченные доступными или имеющие уже завершившееся бронирование
func (r *Repository) ListBookableSlots(ctx context.Context, now time.Time) ([]*domain.SlotWithStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := slotWithStationSelect().
		Where(squirrel.Or{
			squirrel.Eq{"s.is_available": true},
			squirrel.Expr("EXISTS (SELECT 1 FROM reservations r WHERE r.slot_id = s.id AND r.end_time < ?)", now),
		}).
		OrderBy("st.name ASC", "s.slot_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.SlotWithStation, 0)
	for rows.Next() {
		var slot domain.SlotWithStation
		err := rows.Scan(
			&slot.ID,
			&slot.StationID,
			&slot.SlotNumber,
			&slot.IsAvailable,
			&slot.StationName,
			&slot.StationLocation,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBookableSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookableSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// SetSlotAvailability выставляет флаг is_available у слота
func (r *Repository) SetSlotAvailability(ctx context.Context, slotID int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_available", available).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetSlotAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSlotAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetSlotAvailability - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func slotWithStationSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"s.id",
		"s.station_id",
		"s.slot_number",
		"s.is_available",
		"st.name",
		"st.location",
	).
		From("slots s").
		Join("stations st ON st.id = s.station_id")
}
