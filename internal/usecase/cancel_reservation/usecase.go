package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/eventbus"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	notifier        Notifier
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет бронирование владельца: освобождает слот и удаляет бронирование
// Чужое или отсутствующее бронирование ничего не меняет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: user=%d, reservation=%d", req.UserID, req.ReservationID)

	if req.ReservationID <= 0 {
		return nil, ErrReservationNotFound
	}

	details, err := uc.reservationRepo.GetDetailsByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if !details.IsOwnedBy(req.UserID) {
		uc.logger.Warn("CancelReservation: user=%d is not the owner of reservation id=%d", req.UserID, req.ReservationID)
		return nil, ErrReservationNotFound
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.slotRepo.SetSlotAvailability(txCtx, details.SlotID, true); err != nil {
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}
		if err := uc.reservationRepo.Delete(txCtx, details.ID); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d already removed", req.ReservationID)
			return nil, err
		}
		uc.logger.Error("CancelReservation: transaction failed for reservation id=%d: %v", req.ReservationID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.ReservationCancelled()
	uc.logger.Info("CancelReservation: reservation id=%d cancelled, slot=%d released", details.ID, details.SlotID)

	if err := uc.publisher.Publish(ctx, eventbus.ReservationEvent{
		Type:          domain.EventReservationCancelled,
		ReservationID: details.ID,
		UserID:        details.UserID,
		SlotID:        details.SlotID,
		StationID:     details.StationID,
		StartTime:     details.StartTime,
		EndTime:       details.EndTime,
		CarpoolOptIn:  details.CarpoolOptIn,
		OccurredAt:    uc.timeProvider.Now(),
	}); err != nil {
		uc.logger.Warn("CancelReservation: failed to publish event for reservation id=%d: %v", details.ID, err)
	}

	if err := uc.notifier.SendReservationCancelled(ctx, details); err != nil {
		uc.metrics.NotificationFailed("reservation_cancelled")
		uc.logger.Error("CancelReservation: cancellation email failed for reservation id=%d: %v", details.ID, err)
		return nil, fmt.Errorf("%w: reservation id=%d: %v", ErrNotificationFailed, details.ID, err)
	}

	return &Response{
		ReservationID: details.ID,
		SlotID:        details.SlotID,
		SlotNumber:    details.SlotNumber,
		StationName:   details.StationName,
	}, nil
}
