package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

// Service чтение бронирований пользователя
type Service struct {
	reservationRepo ReservationRepository
	qrEncoder       QREncoder
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	qrEncoder QREncoder,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		qrEncoder:       qrEncoder,
		location:        location,
		logger:          logger,
	}
}

// ListForUser возвращает бронирования пользователя и бронирования с карпулингом
// других пользователей на тех станциях, где у пользователя есть бронирования
func (s *Service) ListForUser(ctx context.Context, userID int64) (*models.UserReservationsResponse, error) {
	own, err := s.reservationRepo.ListDetailsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListForUser: failed to list reservations for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - list own: %v", ErrInternal, err)
	}

	stationIDs := uniqueStationIDs(own)

	candidates, err := s.reservationRepo.ListCarpoolAtStations(ctx, stationIDs, userID)
	if err != nil {
		s.logger.Error("ListForUser: failed to list carpool candidates for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - list carpool: %v", ErrInternal, err)
	}

	s.logger.Info("ListForUser: user=%d has %d reservations, %d carpool candidates", userID, len(own), len(candidates))

	return &models.UserReservationsResponse{
		Reservations:      models.FromDomainDetailsList(own, s.location),
		CarpoolCandidates: models.FromDomainDetailsList(candidates, s.location),
	}, nil
}

// GetForUser возвращает бронирование владельца вместе с QR-кодом, отрисованным заново
// Чужое бронирование неотличимо от отсутствующего
func (s *Service) GetForUser(ctx context.Context, id, userID int64) (*models.ReservationResponse, error) {
	details, err := s.reservationRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetForUser: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetForUser - repository error: %v", ErrInternal, err)
	}

	if !details.IsOwnedBy(userID) {
		s.logger.Warn("GetForUser: user=%d requested foreign reservation id=%d", userID, id)
		return nil, ErrReservationNotFound
	}

	qr, err := s.qrEncoder.EncodeBase64(details.SummaryQRPayload(s.location))
	if err != nil {
		s.logger.Error("GetForUser: failed to render QR for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetForUser - render qr: %v", ErrInternal, err)
	}

	resp := models.FromDomainDetails(details, s.location)
	resp.QRCode = &qr
	return resp, nil
}

func uniqueStationIDs(list []*domain.ReservationDetails) []int64 {
	seen := make(map[int64]struct{}, len(list))
	ids := make([]int64, 0, len(list))
	for _, d := range list {
		if _, ok := seen[d.StationID]; ok {
			continue
		}
		seen[d.StationID] = struct{}{}
		ids = append(ids, d.StationID)
	}
	return ids
}
