package domain

// Station зарядная станция
// Создаётся администратором (миграцией), в обычном потоке не меняется
type Station struct {
	ID         int64
	Name       string
	Location   string
	TotalSlots int
	Slots      []*Slot
}

// Slot одна зарядная точка станции, бронируется на интервал времени
type Slot struct {
	ID         int64
	StationID  int64
	SlotNumber int
	// IsAvailable унаследованный флаг: при отмене бронирования выставляется в true,
	// но при проверке доступности не используется (см. TimeWindow.Overlaps)
	IsAvailable bool
}

// SlotWithStation слот вместе с данными его станции (JOIN slots + stations)
type SlotWithStation struct {
	Slot
	StationName     string
	StationLocation string
}
