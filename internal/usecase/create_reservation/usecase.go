package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	stationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/station"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-ChargingService/pkg/txmanager"
)

// Причины отказа для метрики reservations_rejected_total
const (
	reasonMissingFields     = "missing_fields"
	reasonInvalidTimeFormat = "invalid_time_format"
	reasonStartInPast       = "start_in_past"
	reasonInvalidTimeRange  = "invalid_time_range"
	reasonSlotNotFound      = "slot_not_found"
	reasonSlotNotAvailable  = "slot_not_available"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo        SlotRepository
	userRepo        UserRepository
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	availability    AvailabilityChecker
	carpool         CarpoolMatcher
	notifier        Notifier
	qrEncoder       QREncoder
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger

	location     *time.Location
	pricePerHour float64
}

// Deps зависимости use case
type Deps struct {
	SlotRepo        SlotRepository
	UserRepo        UserRepository
	ReservationRepo ReservationRepository
	PaymentRepo     PaymentRepository
	Availability    AvailabilityChecker
	Carpool         CarpoolMatcher
	Notifier        Notifier
	QREncoder       QREncoder
	Publisher       EventPublisher
	Metrics         Metrics
	TxManager       TransactionManager
	Logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location используется для времени без смещения, pricePerHour для суммы платежа
func NewUseCase(deps Deps, location *time.Location, pricePerHour float64) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		slotRepo:        deps.SlotRepo,
		userRepo:        deps.UserRepo,
		reservationRepo: deps.ReservationRepo,
		paymentRepo:     deps.PaymentRepo,
		availability:    deps.Availability,
		carpool:         deps.Carpool,
		notifier:        deps.Notifier,
		qrEncoder:       deps.QREncoder,
		publisher:       deps.Publisher,
		metrics:         deps.Metrics,
		txManager:       deps.TxManager,
		timeProvider:    &RealTimeProvider{},
		logger:          deps.Logger,
		location:        location,
		pricePerHour:    pricePerHour,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка идут в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, slot=%d, start=%s, end=%s, carpool=%t",
		req.UserID, req.SlotID, req.StartTime, req.EndTime, req.CarpoolOptIn)

	// 1. Обязательные поля
	if err := validateRequest(req); err != nil {
		uc.reject(reasonMissingFields, err)
		return nil, err
	}

	// 2. Разбор времени
	window, err := parseWindow(req.StartTime, req.EndTime, uc.location)
	if err != nil {
		uc.reject(reasonInvalidTimeFormat, err)
		return nil, err
	}

	// 3. Начало в будущем, конец позже начала
	if err := validateWindow(window, uc.timeProvider.Now()); err != nil {
		if errors.Is(err, ErrStartInPast) {
			uc.reject(reasonStartInPast, err)
		} else {
			uc.reject(reasonInvalidTimeRange, err)
		}
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var (
		created *domain.Reservation
		slot    *domain.SlotWithStation
		payment *domain.Payment
		qrCode  string
	)

	// 4. Проверка доступности и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		slot, err = uc.slotRepo.GetSlotWithStation(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, stationRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		available, err := uc.availability.Check(txCtx, slot.ID, window)
		if err != nil {
			if isConflict(err) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if !available {
			return ErrSlotNotAvailable
		}

		created, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:       user.ID,
			SlotID:       slot.ID,
			StartTime:    window.Start,
			EndTime:      window.End,
			CarpoolOptIn: req.CarpoolOptIn,
		})
		if err != nil {
			if isConflict(err) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		qrCode, err = uc.qrEncoder.EncodeBase64(domain.ReservationQRPayload(created.ID, user.Username, slot.StationName))
		if err != nil {
			return fmt.Errorf("%w: failed to render qr code: %v", ErrInternal, err)
		}
		if err := uc.reservationRepo.UpdateQRCode(txCtx, created.ID, qrCode); err != nil {
			return fmt.Errorf("%w: failed to store qr code: %v", ErrInternal, err)
		}
		created.QRCode = &qrCode

		payment, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			ReservationID: created.ID,
			Amount:        domain.CalculateAmount(window, uc.pricePerHour),
			Status:        domain.PaymentPending,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			uc.reject(reasonSlotNotFound, err)
			return nil, err
		case errors.Is(err, ErrSlotNotAvailable), isConflict(err):
			uc.reject(reasonSlotNotAvailable, err)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateReservation: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateReservation: created reservation id=%d for slot=%d", created.ID, slot.ID)

	details := &domain.ReservationDetails{
		Reservation:     *created,
		Username:        user.Username,
		UserEmail:       user.Email,
		SlotNumber:      slot.SlotNumber,
		StationID:       slot.StationID,
		StationName:     slot.StationName,
		StationLocation: slot.StationLocation,
	}

	// 5. Попутчики: ошибка подбора не отменяет бронирование
	matches, err := uc.carpool.FindMatches(ctx, details)
	if err != nil {
		uc.logger.Error("CreateReservation: carpool matching failed for reservation id=%d: %v", created.ID, err)
		matches = nil
	}
	usernames := make([]string, 0, len(matches))
	for _, m := range matches {
		usernames = append(usernames, m.Username)
	}

	uc.metrics.ReservationCreated(len(matches))

	// 6. Событие публикуется по возможности
	uc.publish(ctx, eventbus.ReservationEvent{
		Type:           domain.EventReservationCreated,
		ReservationID:  created.ID,
		UserID:         user.ID,
		SlotID:         slot.ID,
		StationID:      slot.StationID,
		StartTime:      created.StartTime,
		EndTime:        created.EndTime,
		CarpoolOptIn:   created.CarpoolOptIn,
		CarpoolMatches: len(matches),
		Amount:         payment.Amount,
		OccurredAt:     uc.timeProvider.Now(),
	})

	// 7. Письмо с подтверждением
	if err := uc.notifier.SendReservationConfirmed(ctx, details, usernames); err != nil {
		uc.metrics.NotificationFailed("reservation_confirmed")
		uc.logger.Error("CreateReservation: confirmation email failed for reservation id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: reservation id=%d: %v", ErrNotificationFailed, created.ID, err)
	}

	return &Response{
		ID:             created.ID,
		UserID:         created.UserID,
		SlotID:         created.SlotID,
		SlotNumber:     slot.SlotNumber,
		StationID:      slot.StationID,
		StationName:    slot.StationName,
		StartTime:      created.StartTime,
		EndTime:        created.EndTime,
		IsPaid:         created.IsPaid,
		CarpoolOptIn:   created.CarpoolOptIn,
		QRCode:         qrCode,
		Amount:         payment.Amount,
		CarpoolMatches: usernames,
		CreatedAt:      created.CreatedAt,
	}, nil
}

func (uc *UseCase) reject(reason string, err error) {
	uc.metrics.ReservationRejected(reason)
	uc.logger.Warn("CreateReservation: rejected (%s): %v", reason, err)
}

func (uc *UseCase) publish(ctx context.Context, event eventbus.ReservationEvent) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish %s for reservation id=%d: %v", event.Type, event.ReservationID, err)
	}
}

// isConflict конфликт параллельных бронирований одного слота:
// нарушение ограничения на пересечение или откат сериализуемой транзакции
func isConflict(err error) bool {
	return errors.Is(err, reservationRepo.ErrOverlap) ||
		errors.Is(err, reservationRepo.ErrSerialization) ||
		errors.Is(err, txmanager.ErrSerializationFailure)
}
