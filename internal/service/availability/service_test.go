package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 20, hour, minute, 0, 0, time.UTC)
}

type fakeRepo struct {
	reservations []*domain.Reservation
	err          error
	calls        int
}

func (f *fakeRepo) GetOverlappingBySlot(_ context.Context, slotID int64, window domain.TimeWindow) ([]*domain.Reservation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// отдаём всё по слоту: решение принимает сервис
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.SlotID == slotID {
			result = append(result, r)
		}
	}
	return result, nil
}

func TestService_Check_ScenarioA(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.Reservation{
		{ID: 1, SlotID: 5, StartTime: at(10, 0), EndTime: at(11, 0)},
	}}
	svc := NewService(repo)

	ok, err := svc.Check(context.Background(), 5, domain.TimeWindow{Start: at(10, 30), End: at(11, 30)})
	require.NoError(t, err)
	assert.False(t, ok, "overlapping window must be rejected")

	ok, err = svc.Check(context.Background(), 5, domain.TimeWindow{Start: at(11, 0), End: at(12, 0)})
	require.NoError(t, err)
	assert.True(t, ok, "touching window must be accepted")

	ok, err = svc.Check(context.Background(), 6, domain.TimeWindow{Start: at(10, 30), End: at(11, 30)})
	require.NoError(t, err)
	assert.True(t, ok, "other slot is unaffected")
}

func TestService_Check_IgnoresAvailabilityFlag(t *testing.T) {
	svc := NewService(&fakeRepo{})

	ok, err := svc.Check(context.Background(), 5, domain.TimeWindow{Start: at(10, 0), End: at(11, 0)})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Check_RepositoryError(t *testing.T) {
	repoErr := errors.New("db down")
	svc := NewService(&fakeRepo{err: repoErr})

	_, err := svc.Check(context.Background(), 5, domain.TimeWindow{Start: at(10, 0), End: at(11, 0)})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, repoErr)
}

func TestHasConflict(t *testing.T) {
	window := domain.TimeWindow{Start: at(10, 0), End: at(11, 0)}

	assert.False(t, HasConflict(window, nil))
	assert.False(t, HasConflict(window, []*domain.Reservation{
		{StartTime: at(9, 0), EndTime: at(10, 0)},
		{StartTime: at(11, 0), EndTime: at(12, 0)},
	}))
	assert.True(t, HasConflict(window, []*domain.Reservation{
		{StartTime: at(9, 0), EndTime: at(10, 0)},
		{StartTime: at(10, 59), EndTime: at(12, 0)},
	}))
}
