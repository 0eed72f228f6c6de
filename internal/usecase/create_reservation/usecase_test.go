package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	stationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/station"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-ChargingService/internal/service/availability"
	"github.com/m04kA/SMC-ChargingService/internal/service/carpool"
	"github.com/m04kA/SMC-ChargingService/pkg/txmanager"
)

var now = time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) string {
	return time.Date(2026, 10, 20, hour, minute, 0, 0, time.UTC).Format(time.RFC3339)
}

// memStore хранит слоты, пользователей, бронирования и платежи в памяти
type memStore struct {
	slots        map[int64]*domain.SlotWithStation
	users        map[int64]*domain.User
	reservations map[int64]*domain.Reservation
	payments     map[int64]*domain.Payment
	nextID       int64

	createErr error
}

func newMemStore() *memStore {
	return &memStore{
		slots: map[int64]*domain.SlotWithStation{
			10: {Slot: domain.Slot{ID: 10, StationID: 1, SlotNumber: 1}, StationName: "Downtown"},
			11: {Slot: domain.Slot{ID: 11, StationID: 1, SlotNumber: 2}, StationName: "Downtown"},
			20: {Slot: domain.Slot{ID: 20, StationID: 2, SlotNumber: 1}, StationName: "Airport"},
		},
		users: map[int64]*domain.User{
			1: {ID: 1, Username: "u1", Email: "u1@example.com"},
			2: {ID: 2, Username: "u2", Email: "u2@example.com"},
			3: {ID: 3, Username: "u3", Email: "u3@example.com"},
		},
		reservations: map[int64]*domain.Reservation{},
		payments:     map[int64]*domain.Payment{},
	}
}

func (s *memStore) GetSlotWithStation(_ context.Context, slotID int64) (*domain.SlotWithStation, error) {
	slot, ok := s.slots[slotID]
	if !ok {
		return nil, stationRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (s *memStore) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	r.ID = s.nextID
	r.CreatedAt = now
	copied := *r
	s.reservations[r.ID] = &copied
	return r, nil
}

func (s *memStore) UpdateQRCode(_ context.Context, id int64, qr string) error {
	s.reservations[id].QRCode = &qr
	return nil
}

func (s *memStore) GetOverlappingBySlot(_ context.Context, slotID int64, window domain.TimeWindow) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range s.reservations {
		if r.SlotID == slotID && r.Window().Overlaps(window) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *memStore) ListOverlappingAtStation(_ context.Context, stationID int64, window domain.TimeWindow) ([]*domain.ReservationDetails, error) {
	result := make([]*domain.ReservationDetails, 0)
	for _, r := range s.reservations {
		slot := s.slots[r.SlotID]
		if slot.StationID != stationID || !r.Window().Overlaps(window) {
			continue
		}
		result = append(result, &domain.ReservationDetails{
			Reservation: *r,
			Username:    s.users[r.UserID].Username,
			SlotNumber:  slot.SlotNumber,
			StationID:   slot.StationID,
			StationName: slot.StationName,
		})
	}
	return result, nil
}

type memPayments struct{ store *memStore }

func (p memPayments) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	p.store.payments[payment.ReservationID] = payment
	return payment, nil
}

// snapshotTx откатывает изменения memStore, если fn вернула ошибку
type snapshotTx struct {
	store     *memStore
	commitErr error
}

func (t *snapshotTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	reservations := make(map[int64]*domain.Reservation, len(t.store.reservations))
	for k, v := range t.store.reservations {
		reservations[k] = v
	}
	payments := make(map[int64]*domain.Payment, len(t.store.payments))
	for k, v := range t.store.payments {
		payments[k] = v
	}

	err := fn(ctx)
	if err == nil && t.commitErr != nil {
		err = t.commitErr
	}
	if err != nil {
		t.store.reservations = reservations
		t.store.payments = payments
	}
	return err
}

type fakeNotifier struct {
	sent    []*domain.ReservationDetails
	matches [][]string
	err     error
}

func (n *fakeNotifier) SendReservationConfirmed(_ context.Context, r *domain.ReservationDetails, matches []string) error {
	n.sent = append(n.sent, r)
	n.matches = append(n.matches, matches)
	return n.err
}

type fakeEncoder struct{ texts []string }

func (e *fakeEncoder) EncodeBase64(text string) (string, error) {
	e.texts = append(e.texts, text)
	return "cXI=", nil
}

type fakePublisher struct {
	events []eventbus.ReservationEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event eventbus.ReservationEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type fakeMetrics struct {
	created  []int
	rejected []string
	failed   []string
}

func (m *fakeMetrics) ReservationCreated(matches int)    { m.created = append(m.created, matches) }
func (m *fakeMetrics) ReservationRejected(reason string) { m.rejected = append(m.rejected, reason) }
func (m *fakeMetrics) NotificationFailed(kind string)    { m.failed = append(m.failed, kind) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc        *UseCase
	store     *memStore
	tx        *snapshotTx
	notifier  *fakeNotifier
	encoder   *fakeEncoder
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:     store,
		tx:        &snapshotTx{store: store},
		notifier:  &fakeNotifier{},
		encoder:   &fakeEncoder{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	f.uc = NewUseCase(Deps{
		SlotRepo:        store,
		UserRepo:        store,
		ReservationRepo: store,
		PaymentRepo:     memPayments{store: store},
		Availability:    availability.NewService(store),
		Carpool:         carpool.NewService(store),
		Notifier:        f.notifier,
		QREncoder:       f.encoder,
		Publisher:       f.publisher,
		Metrics:         f.metrics,
		TxManager:       f.tx,
		Logger:          nopLogger{},
	}, time.UTC, 4.5)
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func (f *fixture) book(userID, slotID int64, start, end string, carpoolOptIn bool) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{
		UserID:       userID,
		SlotID:       slotID,
		StartTime:    start,
		EndTime:      end,
		CarpoolOptIn: carpoolOptIn,
	})
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.book(1, 10, at(10, 0), at(11, 30), false)
	require.NoError(t, err)

	assert.Equal(t, "Downtown", resp.StationName)
	assert.Equal(t, "cXI=", resp.QRCode)
	assert.Equal(t, 6.75, resp.Amount)
	assert.Empty(t, resp.CarpoolMatches)
	assert.Equal(t, []string{"Reservation ID: 1\nUser: u1\nStation: Downtown"}, f.encoder.texts)

	stored := f.store.reservations[resp.ID]
	require.NotNil(t, stored)
	require.NotNil(t, stored.QRCode)
	assert.Equal(t, domain.PaymentPending, f.store.payments[resp.ID].Status)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "u1@example.com", f.notifier.sent[0].UserEmail)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventReservationCreated, f.publisher.events[0].Type)
	assert.Equal(t, []int{0}, f.metrics.created)
}

func TestExecute_OverlapScenario(t *testing.T) {
	f := newFixture()

	_, err := f.book(1, 10, at(10, 0), at(11, 0), false)
	require.NoError(t, err)

	_, err = f.book(2, 10, at(10, 30), at(11, 30), false)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, f.store.reservations, 1)

	_, err = f.book(2, 10, at(11, 0), at(12, 0), false)
	require.NoError(t, err)
	assert.Len(t, f.store.reservations, 2)

	_, err = f.book(3, 11, at(10, 30), at(11, 30), false)
	require.NoError(t, err, "another slot of the same station is independent")

	assert.Equal(t, []string{reasonSlotNotAvailable}, f.metrics.rejected)
}

func TestExecute_CarpoolScenario(t *testing.T) {
	f := newFixture()

	_, err := f.book(2, 11, at(9, 30), at(9, 45), true)
	require.NoError(t, err)
	_, err = f.book(3, 20, at(9, 30), at(9, 45), true) // другая станция
	require.NoError(t, err)

	resp, err := f.book(1, 10, at(9, 0), at(10, 0), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"u2"}, resp.CarpoolMatches)
	assert.Equal(t, []string{"u2"}, f.notifier.matches[2])
	assert.Equal(t, 1, f.publisher.events[2].CarpoolMatches)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		slotID int64
		start  string
		end    string
		want   error
		reason string
	}{
		{"missing slot", 0, at(10, 0), at(11, 0), ErrMissingFields, reasonMissingFields},
		{"missing start", 10, "", at(11, 0), ErrMissingFields, reasonMissingFields},
		{"missing end", 10, at(10, 0), " ", ErrMissingFields, reasonMissingFields},
		{"bad format", 10, "tomorrow", at(11, 0), ErrInvalidTimeFormat, reasonInvalidTimeFormat},
		{"start in past", 10, at(7, 0), at(9, 0), ErrStartInPast, reasonStartInPast},
		{"start equals now", 10, at(8, 0), at(9, 0), ErrStartInPast, reasonStartInPast},
		{"end before start", 10, at(11, 0), at(10, 0), ErrInvalidTimeRange, reasonInvalidTimeRange},
		{"end equals start", 10, at(10, 0), at(10, 0), ErrInvalidTimeRange, reasonInvalidTimeRange},
		{"unknown slot", 99, at(10, 0), at(11, 0), ErrSlotNotFound, reasonSlotNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.book(1, tt.slotID, tt.start, tt.end, false)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.store.reservations)
			assert.Empty(t, f.notifier.sent)
			assert.Equal(t, []string{tt.reason}, f.metrics.rejected)
		})
	}
}

func TestExecute_LocalTimeUsesConfiguredZone(t *testing.T) {
	f := newFixture()
	f.uc.location = time.FixedZone("CEST", 2*60*60)

	resp, err := f.book(1, 10, "2026-10-20T12:00", "2026-10-20T13:00", false)
	require.NoError(t, err)
	assert.True(t, resp.StartTime.Equal(time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)))
}

func TestExecute_ConcurrentConflictMapsToNotAvailable(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		commitErr error
	}{
		{"exclusion constraint", reservationRepo.ErrOverlap, nil},
		{"serialization on insert", reservationRepo.ErrSerialization, nil},
		{"serialization on commit", nil, txmanager.ErrSerializationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.createErr = tt.createErr
			f.tx.commitErr = tt.commitErr

			_, err := f.book(1, 10, at(10, 0), at(11, 0), false)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Empty(t, f.store.reservations)
			assert.Empty(t, f.notifier.sent)
		})
	}
}

func TestExecute_NotificationFailureKeepsReservation(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("smtp down")

	_, err := f.book(1, 10, at(10, 0), at(11, 0), false)
	assert.ErrorIs(t, err, ErrNotificationFailed)
	assert.Len(t, f.store.reservations, 1)
	assert.Equal(t, []string{"reservation_confirmed"}, f.metrics.failed)
}

func TestExecute_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	_, err := f.book(1, 10, at(10, 0), at(11, 0), false)
	require.NoError(t, err)
	assert.Len(t, f.notifier.sent, 1)
}

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("X", -5*60*60)

	got, err := parseDateTime("2026-10-20T10:00:00+02:00", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)))

	got, err = parseDateTime("2026-10-20T10:00", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC)))

	got, err = parseDateTime("2026-10-20 10:00:30", loc)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Second())

	_, err = parseDateTime("20/10/2026 10:00", loc)
	assert.Error(t, err)
}
