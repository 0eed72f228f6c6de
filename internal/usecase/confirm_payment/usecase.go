package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/eventbus"
)

// UseCase use case для подтверждения оплаты (симуляция, без платёжного шлюза)
type UseCase struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger

	pricePerHour float64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
	pricePerHour float64,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		pricePerHour:    pricePerHour,
	}
}

// Execute переводит платёж в completed и выставляет is_paid у бронирования в одной транзакции
// Повторный вызов для оплаченного бронирования ничего не меняет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: user=%d, reservation=%d", req.UserID, req.ReservationID)

	if req.ReservationID <= 0 {
		return nil, ErrReservationNotFound
	}

	var (
		reservation *domain.Reservation
		payment     *domain.Payment
		alreadyPaid bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		reservation, err = uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if !reservation.IsOwnedBy(req.UserID) {
			return ErrReservationNotFound
		}

		payment, err = uc.paymentRepo.GetByReservationID(txCtx, reservation.ID)
		switch {
		case errors.Is(err, paymentRepo.ErrPaymentNotFound):
			payment, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
				ReservationID: reservation.ID,
				Amount:        domain.CalculateAmount(reservation.Window(), uc.pricePerHour),
				Status:        domain.PaymentCompleted,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
			}
		case err != nil:
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		case payment.IsCompleted() && reservation.IsPaid:
			alreadyPaid = true
			return nil
		case !payment.IsCompleted():
			if err := uc.paymentRepo.UpdateStatus(txCtx, payment.ID, domain.PaymentCompleted); err != nil {
				return fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
			}
			payment.Status = domain.PaymentCompleted
			payment.UpdatedAt = uc.timeProvider.Now()
		}

		if !reservation.IsPaid {
			if err := uc.reservationRepo.MarkPaid(txCtx, reservation.ID); err != nil {
				return fmt.Errorf("%w: failed to mark reservation as paid: %v", ErrInternal, err)
			}
			reservation.IsPaid = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			uc.logger.Warn("ConfirmPayment: reservation id=%d not found for user=%d", req.ReservationID, req.UserID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ConfirmPayment: transaction failed for reservation id=%d: %v", req.ReservationID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	resp := &Response{
		ReservationID: reservation.ID,
		PaymentID:     payment.ID,
		Amount:        payment.Amount,
		Status:        string(payment.Status),
		IsPaid:        reservation.IsPaid,
		AlreadyPaid:   alreadyPaid,
		UpdatedAt:     payment.UpdatedAt,
	}

	if alreadyPaid {
		uc.logger.Info("ConfirmPayment: reservation id=%d already paid", reservation.ID)
		return resp, nil
	}

	uc.metrics.PaymentConfirmed()
	uc.logger.Info("ConfirmPayment: reservation id=%d paid, amount=%.2f", reservation.ID, payment.Amount)

	if err := uc.publisher.Publish(ctx, eventbus.ReservationEvent{
		Type:          domain.EventReservationPaid,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		SlotID:        reservation.SlotID,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		CarpoolOptIn:  reservation.CarpoolOptIn,
		Amount:        payment.Amount,
		OccurredAt:    uc.timeProvider.Now(),
	}); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to publish event for reservation id=%d: %v", reservation.ID, err)
	}

	return resp, nil
}
