package models

import "github.com/m04kA/SMC-ChargingService/internal/domain"

// SlotResponse слот станции
type SlotResponse struct {
	ID          int64 `json:"id"`
	SlotNumber  int   `json:"slotNumber"`
	IsAvailable bool  `json:"isAvailable"`
}

// StationResponse станция со слотами
type StationResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	TotalSlots int             `json:"totalSlots"`
	Slots      []*SlotResponse `json:"slots"`
}

// StationListResponse список станций
type StationListResponse struct {
	Stations []*StationResponse `json:"stations"`
	Total    int                `json:"total"`
}

// BookableSlotResponse слот, доступный в форме бронирования
type BookableSlotResponse struct {
	ID              int64  `json:"id"`
	StationID       int64  `json:"stationId"`
	StationName     string `json:"stationName"`
	StationLocation string `json:"stationLocation"`
	SlotNumber      int    `json:"slotNumber"`
	IsAvailable     bool   `json:"isAvailable"`
}

// BookableSlotListResponse список слотов для бронирования
type BookableSlotListResponse struct {
	Slots []*BookableSlotResponse `json:"slots"`
	Total int                     `json:"total"`
}

// FromDomainStations конвертирует станции в ответ
func FromDomainStations(stations []*domain.Station) *StationListResponse {
	resp := &StationListResponse{
		Stations: make([]*StationResponse, 0, len(stations)),
		Total:    len(stations),
	}

	for _, st := range stations {
		item := &StationResponse{
			ID:         st.ID,
			Name:       st.Name,
			Location:   st.Location,
			TotalSlots: st.TotalSlots,
			Slots:      make([]*SlotResponse, 0, len(st.Slots)),
		}
		for _, slot := range st.Slots {
			item.Slots = append(item.Slots, &SlotResponse{
				ID:          slot.ID,
				SlotNumber:  slot.SlotNumber,
				IsAvailable: slot.IsAvailable,
			})
		}
		resp.Stations = append(resp.Stations, item)
	}

	return resp
}

// FromDomainSlots конвертирует слоты со станциями в ответ
func FromDomainSlots(slots []*domain.SlotWithStation) *BookableSlotListResponse {
	resp := &BookableSlotListResponse{
		Slots: make([]*BookableSlotResponse, 0, len(slots)),
		Total: len(slots),
	}

	for _, slot := range slots {
		resp.Slots = append(resp.Slots, &BookableSlotResponse{
			ID:              slot.ID,
			StationID:       slot.StationID,
			StationName:     slot.StationName,
			StationLocation: slot.StationLocation,
			SlotNumber:      slot.SlotNumber,
			IsAvailable:     slot.IsAvailable,
		})
	}

	return resp
}
