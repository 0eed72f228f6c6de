package carpool

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

func details(id, userID, stationID int64, username string, start, end time.Time, carpool bool) *domain.ReservationDetails {
	return &domain.ReservationDetails{
		Reservation: domain.Reservation{
			ID:           id,
			UserID:       userID,
			StartTime:    start,
			EndTime:      end,
			CarpoolOptIn: carpool,
		},
		Username:  username,
		StationID: stationID,
	}
}

type fakeRepo struct {
	candidates []*domain.ReservationDetails
	err        error
	stationID  int64
}

func (f *fakeRepo) ListOverlappingAtStation(_ context.Context, stationID int64, _ domain.TimeWindow) ([]*domain.ReservationDetails, error) {
	f.stationID = stationID
	return f.candidates, f.err
}

func TestService_FindMatches_Scenario(t *testing.T) {
	u1 := details(1, 1, 7, "u1", at(9, 0), at(10, 0), true)
	u2 := details(2, 2, 7, "u2", at(9, 30), at(9, 45), true)

	repo := &fakeRepo{candidates: []*domain.ReservationDetails{u1, u2}}
	svc := NewService(repo)

	matches, err := svc.FindMatches(context.Background(), u1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.stationID)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"u2"}, Usernames(matches))
}

func TestService_FindMatches_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")})

	_, err := svc.FindMatches(context.Background(), details(1, 1, 7, "u1", at(9, 0), at(10, 0), false))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestFilterMatches(t *testing.T) {
	target := details(1, 1, 7, "u1", at(9, 0), at(10, 0), false)

	candidates := []*domain.ReservationDetails{
		details(2, 2, 7, "match", at(9, 30), at(9, 45), true),
		details(3, 3, 7, "no-carpool", at(9, 30), at(9, 45), false),
		details(4, 1, 7, "same-user", at(9, 30), at(9, 45), true),
		details(5, 4, 8, "other-station", at(9, 30), at(9, 45), true),
		details(6, 5, 7, "touching", at(10, 0), at(11, 0), true),
		details(7, 6, 7, "covering", at(8, 0), at(12, 0), true),
	}

	matches := FilterMatches(target, candidates)
	assert.Equal(t, []string{"match", "covering"}, Usernames(matches))
}

func TestFilterMatches_Empty(t *testing.T) {
	target := details(1, 1, 7, "u1", at(9, 0), at(10, 0), true)

	matches := FilterMatches(target, nil)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}
