package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// validateRequest проверяет наличие обязательных полей
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slot is required", ErrMissingFields)
	}
	if strings.TrimSpace(req.StartTime) == "" {
		return fmt.Errorf("%w: start time is required", ErrMissingFields)
	}
	if strings.TrimSpace(req.EndTime) == "" {
		return fmt.Errorf("%w: end time is required", ErrMissingFields)
	}
	return nil
}

// parseWindow разбирает начало и конец бронирования
func parseWindow(start, end string, loc *time.Location) (domain.TimeWindow, error) {
	startTime, err := parseDateTime(start, loc)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: start time %q", ErrInvalidTimeFormat, start)
	}
	endTime, err := parseDateTime(end, loc)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: end time %q", ErrInvalidTimeFormat, end)
	}
	return domain.TimeWindow{Start: startTime, End: endTime}, nil
}

// parseDateTime принимает RFC 3339 со смещением или локальное время без смещения,
// которое интерпретируется в loc
func parseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	for _, layout := range domain.LocalDateTimeFormats {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported datetime %q", value)
}

// validateWindow проверяет, что начало в будущем и конец позже начала
func validateWindow(window domain.TimeWindow, now time.Time) error {
	if !window.Start.After(now) {
		return ErrStartInPast
	}
	if !window.IsValid() {
		return ErrInvalidTimeRange
	}
	return nil
}
