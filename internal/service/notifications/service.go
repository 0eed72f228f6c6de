package notifications

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

const emailTimeFormat = "2006-01-02 15:04 MST"

// Service формирует и отправляет письма о бронированиях
type Service struct {
	mailer   Mailer
	location *time.Location
}

// NewService создает новый экземпляр сервиса уведомлений
// Время в письмах выводится в часовом поясе location
func NewService(mailer Mailer, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{mailer: mailer, location: location}
}

// SendReservationConfirmed письмо о созданном бронировании со списком попутчиков
func (s *Service) SendReservationConfirmed(ctx context.Context, r *domain.ReservationDetails, matches []string) error {
	data := emailData{
		Username:    r.Username,
		StationName: r.StationName,
		SlotNumber:  r.SlotNumber,
		Start:       r.StartTime.In(s.location).Format(emailTimeFormat),
		End:         r.EndTime.In(s.location).Format(emailTimeFormat),
		Matches:     matches,
	}
	return s.send(ctx, r.UserEmail, domain.EmailSubjectReservationConfirmed, confirmedTemplate, data)
}

// SendReservationCancelled письмо об отменённом бронировании
func (s *Service) SendReservationCancelled(ctx context.Context, r *domain.ReservationDetails) error {
	data := emailData{
		Username:    r.Username,
		StationName: r.StationName,
		SlotNumber:  r.SlotNumber,
	}
	return s.send(ctx, r.UserEmail, domain.EmailSubjectReservationCancelled, cancelledTemplate, data)
}

func (s *Service) send(ctx context.Context, to, subject string, tmpl *template.Template, data emailData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, tmpl.Name(), err)
	}

	if err := s.mailer.Send(ctx, to, subject, body.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}
