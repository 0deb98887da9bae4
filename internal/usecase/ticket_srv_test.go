package usecase

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is shared in-memory state behind the fake repositories. Writes
// made inside a fake transaction are staged and only land on Commit, and
// LockByID takes a real per-showtime mutex held until Commit/Rollback, so the
// service's locking protocol is exercised for real.
type memStore struct {
	mu             sync.Mutex
	showtimes      map[uuid.UUID]*entity.Showtime
	seatsByTheater map[uuid.UUID][]*entity.Seat
	seatsByID      map[uuid.UUID]*entity.Seat
	bookings       map[uuid.UUID]*entity.Booking
	seatBookings   []*entity.SeatBooking
	payments       map[uuid.UUID]*entity.Payment
	users          map[uuid.UUID]*entity.User

	showtimeLocks map[uuid.UUID]*sync.Mutex
	bookingLocks  map[uuid.UUID]*sync.Mutex

	// refCollisions makes FindByReference report a hit that many times
	// before answering honestly.
	refCollisions int
}

func newMemStore() *memStore {
	return &memStore{
		showtimes:      make(map[uuid.UUID]*entity.Showtime),
		seatsByTheater: make(map[uuid.UUID][]*entity.Seat),
		seatsByID:      make(map[uuid.UUID]*entity.Seat),
		bookings:       make(map[uuid.UUID]*entity.Booking),
		payments:       make(map[uuid.UUID]*entity.Payment),
		users:          make(map[uuid.UUID]*entity.User),
		showtimeLocks:  make(map[uuid.UUID]*sync.Mutex),
		bookingLocks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *memStore) lockFor(showtimeID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showtimeLocks[showtimeID] == nil {
		s.showtimeLocks[showtimeID] = &sync.Mutex{}
	}
	return s.showtimeLocks[showtimeID]
}

func (s *memStore) lockForBooking(bookingID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bookingLocks[bookingID] == nil {
		s.bookingLocks[bookingID] = &sync.Mutex{}
	}
	return s.bookingLocks[bookingID]
}

func (s *memStore) addSeat(seat *entity.Seat) {
	s.seatsByTheater[seat.TheaterID] = append(s.seatsByTheater[seat.TheaterID], seat)
	s.seatsByID[seat.ID] = seat
}

// addHeldSeat seeds a committed booking holding one seat.
func (s *memStore) addHeldSeat(showtimeID, seatID, userID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	booking := &entity.Booking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:     userID,
		ShowtimeID: showtimeID,
		Reference:  "SEED" + uuid.New().String()[:4],
		Status:     status,
		TotalPrice: decimal.NewFromInt(10),
	}
	s.bookings[booking.ID] = booking
	s.seatBookings = append(s.seatBookings, &entity.SeatBooking{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		BookingID:  booking.ID,
		SeatID:     seatID,
		Price:      decimal.NewFromInt(10),
	})
	return booking
}

// ==================== FAKE TRANSACTION ====================

type fakeTx struct {
	store  *memStore
	staged []func(s *memStore)
	locks  []*sync.Mutex
	done   bool
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Lock()
	for _, apply := range t.staged {
		apply(t.store)
	}
	t.store.mu.Unlock()
	for _, l := range t.locks {
		l.Unlock()
	}
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.staged = nil
	for _, l := range t.locks {
		l.Unlock()
	}
	return nil
}

type fakeDB struct {
	store *memStore
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (d *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	return &fakeTx{store: d.store}, nil
}
func (d *fakeDB) Ping(ctx context.Context) error { return nil }
func (d *fakeDB) Close()                         {}

// ==================== FAKE REPOSITORIES ====================

type fakeShowtimeRepo struct {
	store *memStore
	tx    *fakeTx
}

func (r *fakeShowtimeRepo) WithTx(tx database.Tx) repository.ShowtimeRepository {
	return &fakeShowtimeRepo{store: r.store, tx: tx.(*fakeTx)}
}

func (r *fakeShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.showtimes[showtime.ID] = showtime
	return nil
}

func (r *fakeShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.showtimes[id], nil
}

func (r *fakeShowtimeRepo) FindAll(ctx context.Context, filter repository.ShowtimeFilter, limit, offset int) ([]*entity.Showtime, error) {
	return nil, nil
}

func (r *fakeShowtimeRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.store.mu.Lock()
	showtime := r.store.showtimes[id]
	r.store.mu.Unlock()
	if showtime == nil {
		return nil, nil
	}

	lock := r.store.lockFor(id)
	lock.Lock()
	r.tx.locks = append(r.tx.locks, lock)
	return showtime, nil
}

type fakeSeatRepo struct {
	store *memStore
}

func (r *fakeSeatRepo) WithTx(tx database.Tx) repository.SeatRepository { return r }

func (r *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, seat := range seats {
		r.store.addSeat(seat)
	}
	return nil
}

func (r *fakeSeatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.seatsByID[id], nil
}

func (r *fakeSeatRepo) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.Seat(nil), r.store.seatsByTheater[theaterID]...), nil
}

type fakeBookingRepo struct {
	store *memStore
	tx    *fakeTx
}

func (r *fakeBookingRepo) WithTx(tx database.Tx) repository.BookingRepository {
	return &fakeBookingRepo{store: r.store, tx: tx.(*fakeTx)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if r.tx != nil {
		r.tx.staged = append(r.tx.staged, func(s *memStore) {
			s.bookings[booking.ID] = booking
		})
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.bookings[id], nil
}

func (r *fakeBookingRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	booking := r.store.bookings[id]
	r.store.mu.Unlock()
	if booking == nil {
		return nil, nil
	}

	lock := r.store.lockForBooking(id)
	lock.Lock()
	r.tx.locks = append(r.tx.locks, lock)

	// Re-read after acquiring the lock; a serialized writer may have
	// committed a status change meanwhile
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.bookings[id], nil
}

func (r *fakeBookingRepo) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.refCollisions > 0 {
		r.store.refCollisions--
		return &entity.Booking{Reference: reference}, nil
	}
	for _, booking := range r.store.bookings {
		if booking.Reference == reference {
			return booking, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.UserID == userID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := r.FindByUserID(ctx, userID, 0, 0)
	return int64(len(bookings)), nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range r.store.bookings {
		if filter.UserID != nil && booking.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		out = append(out, booking)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	update := func(s *memStore) {
		if booking := s.bookings[bookingID]; booking != nil {
			booking.Status = status
			booking.UpdatedAt = time.Now()
		}
	}
	if r.tx != nil {
		r.tx.staged = append(r.tx.staged, update)
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	update(r.store)
	return nil
}

type fakeSeatBookingRepo struct {
	store *memStore
	tx    *fakeTx
}

func (r *fakeSeatBookingRepo) WithTx(tx database.Tx) repository.SeatBookingRepository {
	return &fakeSeatBookingRepo{store: r.store, tx: tx.(*fakeTx)}
}

func (r *fakeSeatBookingRepo) CreateBatch(ctx context.Context, seatBookings []*entity.SeatBooking) error {
	if r.tx != nil {
		r.tx.staged = append(r.tx.staged, func(s *memStore) {
			s.seatBookings = append(s.seatBookings, seatBookings...)
		})
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seatBookings = append(r.store.seatBookings, seatBookings...)
	return nil
}

func (r *fakeSeatBookingRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.SeatBooking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.SeatBooking
	for _, sb := range r.store.seatBookings {
		if sb.BookingID == bookingID {
			out = append(out, sb)
		}
	}
	return out, nil
}

func (r *fakeSeatBookingRepo) FindReservedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, sb := range r.store.seatBookings {
		booking := r.store.bookings[sb.BookingID]
		if booking == nil || booking.ShowtimeID != showtimeID || !booking.Status.IsActive() {
			continue
		}
		if !seen[sb.SeatID] {
			seen[sb.SeatID] = true
			out = append(out, sb.SeatID)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	store *memStore
	tx    *fakeTx
}

func (r *fakePaymentRepo) WithTx(tx database.Tx) repository.PaymentRepository {
	return &fakePaymentRepo{store: r.store, tx: tx.(*fakeTx)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if r.tx != nil {
		r.tx.staged = append(r.tx.staged, func(s *memStore) {
			s.payments[payment.ID] = payment
		})
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if payment, ok := r.store.payments[id]; ok {
		copied := *payment
		return &copied, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, payment := range r.store.payments {
		if payment.BookingID == bookingID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	copied := *payment
	update := func(s *memStore) {
		s.payments[copied.ID] = &copied
	}
	if r.tx != nil {
		r.tx.staged = append(r.tx.staged, update)
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	update(r.store)
	return nil
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

// ==================== TEST FIXTURE ====================

type ticketEnv struct {
	store   *memStore
	service TicketService

	userID     uuid.UUID
	theaterID  uuid.UUID
	showtimeID uuid.UUID
	inactiveID uuid.UUID

	// A1 regular, A2 premium, A3 vip, A4 accessible
	seatA1, seatA2, seatA3, seatA4 uuid.UUID
}

func newTicketEnv(t *testing.T) *ticketEnv {
	t.Helper()

	store := newMemStore()
	repo := &repository.Repository{
		User:        &fakeUserRepo{store: store},
		Showtime:    &fakeShowtimeRepo{store: store},
		Seat:        &fakeSeatRepo{store: store},
		Booking:     &fakeBookingRepo{store: store},
		SeatBooking: &fakeSeatBookingRepo{store: store},
		Payment:     &fakePaymentRepo{store: store},
	}

	env := &ticketEnv{
		store:      store,
		service:    NewTicketService(&fakeDB{store: store}, repo, zap.NewNop()),
		userID:     uuid.New(),
		theaterID:  uuid.New(),
		showtimeID: uuid.New(),
		inactiveID: uuid.New(),
		seatA1:     uuid.New(),
		seatA2:     uuid.New(),
		seatA3:     uuid.New(),
		seatA4:     uuid.New(),
	}

	store.users[env.userID] = &entity.User{
		Base:     entity.Base{ID: env.userID},
		Username: "moviegoer",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}

	seatTypes := []struct {
		id  uuid.UUID
		num int
		typ entity.SeatType
	}{
		{env.seatA1, 1, entity.SeatTypeRegular},
		{env.seatA2, 2, entity.SeatTypePremium},
		{env.seatA3, 3, entity.SeatTypeVIP},
		{env.seatA4, 4, entity.SeatTypeAccessible},
	}
	for _, st := range seatTypes {
		store.addSeat(&entity.Seat{
			BaseSimple: entity.BaseSimple{ID: st.id},
			TheaterID:  env.theaterID,
			SeatRow:    "A",
			SeatNumber: st.num,
			SeatType:   st.typ,
		})
	}

	store.showtimes[env.showtimeID] = &entity.Showtime{
		BaseSimple: entity.BaseSimple{ID: env.showtimeID},
		MovieID:    uuid.New(),
		TheaterID:  env.theaterID,
		StartTime:  time.Now().Add(24 * time.Hour),
		EndTime:    time.Now().Add(26 * time.Hour),
		BasePrice:  decimal.NewFromInt(10),
		IsActive:   true,
	}
	store.showtimes[env.inactiveID] = &entity.Showtime{
		BaseSimple: entity.BaseSimple{ID: env.inactiveID},
		MovieID:    uuid.New(),
		TheaterID:  env.theaterID,
		StartTime:  time.Now().Add(24 * time.Hour),
		EndTime:    time.Now().Add(26 * time.Hour),
		BasePrice:  decimal.NewFromInt(10),
		IsActive:   false,
	}

	return env
}

func (e *ticketEnv) book(seatIDs ...uuid.UUID) *request.CreateBookingRequest {
	ids := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		ids[i] = id.String()
	}
	return &request.CreateBookingRequest{
		ShowtimeID: e.showtimeID.String(),
		SeatIDs:    ids,
	}
}

// ==================== AVAILABILITY ====================

func TestGetAvailableSeats_AllFree(t *testing.T) {
	env := newTicketEnv(t)

	avail, err := env.service.GetAvailableSeats(context.Background(), env.showtimeID.String())
	require.NoError(t, err)
	require.Len(t, avail.AvailableSeats, 4)

	// Catalog order preserved, prices follow seat type
	prices := []string{"10", "15", "20", "10"}
	for i, seat := range avail.AvailableSeats {
		assert.Equal(t, i+1, seat.SeatNumber)
		assert.True(t, seat.Price.Equal(decimal.RequireFromString(prices[i])),
			"seat %d price %s", seat.SeatNumber, seat.Price.String())
	}
}

func TestGetAvailableSeats_ExcludesHeldSeats(t *testing.T) {
	env := newTicketEnv(t)
	env.store.addHeldSeat(env.showtimeID, env.seatA1, env.userID, entity.BookingStatusPending)
	env.store.addHeldSeat(env.showtimeID, env.seatA3, env.userID, entity.BookingStatusConfirmed)

	avail, err := env.service.GetAvailableSeats(context.Background(), env.showtimeID.String())
	require.NoError(t, err)
	require.Len(t, avail.AvailableSeats, 2)
	assert.Equal(t, env.seatA2.String(), avail.AvailableSeats[0].ID)
	assert.Equal(t, env.seatA4.String(), avail.AvailableSeats[1].ID)
}

func TestGetAvailableSeats_CancelledBookingFreesSeats(t *testing.T) {
	env := newTicketEnv(t)
	env.store.addHeldSeat(env.showtimeID, env.seatA1, env.userID, entity.BookingStatusCancelled)

	avail, err := env.service.GetAvailableSeats(context.Background(), env.showtimeID.String())
	require.NoError(t, err)
	assert.Len(t, avail.AvailableSeats, 4)
}

func TestGetAvailableSeats_UnknownShowtime(t *testing.T) {
	env := newTicketEnv(t)

	_, err := env.service.GetAvailableSeats(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAvailableSeats_Idempotent(t *testing.T) {
	env := newTicketEnv(t)
	env.store.addHeldSeat(env.showtimeID, env.seatA2, env.userID, entity.BookingStatusPending)

	first, err := env.service.GetAvailableSeats(context.Background(), env.showtimeID.String())
	require.NoError(t, err)
	second, err := env.service.GetAvailableSeats(context.Background(), env.showtimeID.String())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// ==================== BOOKING ====================

func TestCreateBooking_TotalIsSumOfSeatPrices(t *testing.T) {
	env := newTicketEnv(t)

	booking, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1, env.seatA2, env.seatA3))
	require.NoError(t, err)

	// 10 + 15 + 20
	assert.True(t, booking.TotalPrice.Equal(decimal.NewFromInt(45)),
		"total %s", booking.TotalPrice.String())
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), booking.Reference)
	require.Len(t, booking.Seats, 3)

	// Committed state matches the response
	assert.Len(t, env.store.bookings, 1)
	assert.Len(t, env.store.seatBookings, 3)
}

func TestCreateBooking_SeatConflictLeavesNothingBehind(t *testing.T) {
	env := newTicketEnv(t)
	env.store.addHeldSeat(env.showtimeID, env.seatA2, uuid.New(), entity.BookingStatusPending)

	_, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1, env.seatA2))
	require.ErrorIs(t, err, ErrConflict)

	// The error names the exact seat, both by id and by row label
	assert.Contains(t, err.Error(), env.seatA2.String())
	assert.Contains(t, err.Error(), "A2")

	// Only the seeded booking remains; A1 was not written
	assert.Len(t, env.store.bookings, 1)
	assert.Len(t, env.store.seatBookings, 1)
}

func TestCreateBooking_UnknownShowtime(t *testing.T) {
	env := newTicketEnv(t)

	req := env.book(env.seatA1)
	req.ShowtimeID = uuid.New().String()

	_, err := env.service.CreateBooking(context.Background(), env.userID.String(), req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBooking_InactiveShowtime(t *testing.T) {
	env := newTicketEnv(t)

	req := env.book(env.seatA1)
	req.ShowtimeID = env.inactiveID.String()

	_, err := env.service.CreateBooking(context.Background(), env.userID.String(), req)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, env.store.bookings)
}

func TestCreateBooking_SeatFromAnotherTheater(t *testing.T) {
	env := newTicketEnv(t)

	foreignSeat := &entity.Seat{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		TheaterID:  uuid.New(),
		SeatRow:    "B",
		SeatNumber: 1,
		SeatType:   entity.SeatTypeRegular,
	}
	env.store.addSeat(foreignSeat)

	_, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1, foreignSeat.ID))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, env.store.bookings)
}

func TestCreateBooking_DuplicateSeatInRequest(t *testing.T) {
	env := newTicketEnv(t)

	_, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1, env.seatA1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateBooking_EmptySeatList(t *testing.T) {
	env := newTicketEnv(t)

	_, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		&request.CreateBookingRequest{ShowtimeID: env.showtimeID.String(), SeatIDs: []string{}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateBooking_ReferenceRegeneratedOnCollision(t *testing.T) {
	env := newTicketEnv(t)
	env.store.refCollisions = 2

	booking, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), booking.Reference)
	assert.Zero(t, env.store.refCollisions)
}

func TestCreateBooking_ReferenceGenerationGivesUp(t *testing.T) {
	env := newTicketEnv(t)
	env.store.refCollisions = 100

	_, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique booking reference")
	assert.Empty(t, env.store.bookings)
}

func TestCreateBooking_ConcurrentRequestsForSameSeat(t *testing.T) {
	env := newTicketEnv(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.CreateBooking(context.Background(), env.userID.String(),
				env.book(env.seatA3))
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}

	assert.Equal(t, 1, won, "exactly one booking attempt should win the seat")
	assert.Len(t, env.store.bookings, 1)
	assert.Len(t, env.store.seatBookings, 1)
}

func TestCancelBooking(t *testing.T) {
	env := newTicketEnv(t)

	booking, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1))
	require.NoError(t, err)

	// Another user cannot cancel it
	err = env.service.CancelBooking(context.Background(), uuid.New().String(), booking.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The owner can
	require.NoError(t, env.service.CancelBooking(context.Background(), env.userID.String(), booking.ID))

	// And the seat frees up
	avail, err := env.service.GetAvailableSeats(context.Background(), env.showtimeID.String())
	require.NoError(t, err)
	assert.Len(t, avail.AvailableSeats, 4)

	// Cancelling twice is rejected
	err = env.service.CancelBooking(context.Background(), env.userID.String(), booking.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateBooking_RejectsIllegalTransition(t *testing.T) {
	env := newTicketEnv(t)

	booking, err := env.service.CreateBooking(context.Background(), env.userID.String(),
		env.book(env.seatA1))
	require.NoError(t, err)

	completed := string(entity.BookingStatusCompleted)
	_, err = env.service.UpdateBooking(context.Background(), booking.ID,
		&request.UpdateBookingRequest{Status: &completed})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	confirmed := string(entity.BookingStatusConfirmed)
	updated, err := env.service.UpdateBooking(context.Background(), booking.ID,
		&request.UpdateBookingRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, updated.Status)
}

func TestCreateSupportBooking(t *testing.T) {
	env := newTicketEnv(t)
	agentID := uuid.New()
	env.store.users[agentID] = &entity.User{
		Base:     entity.Base{ID: agentID},
		Username: "agent",
		Role:     entity.RoleSupportAgent,
		IsActive: true,
	}

	booking, err := env.service.CreateSupportBooking(context.Background(), agentID.String(),
		&request.CreateSupportBookingRequest{
			UserID:     env.userID.String(),
			ShowtimeID: env.showtimeID.String(),
			SeatIDs:    []string{env.seatA4.String()},
		})
	require.NoError(t, err)

	assert.Equal(t, env.userID.String(), booking.UserID)
	assert.True(t, booking.CreatedBySupport)
}

// ==================== PAYMENT ====================

func (e *ticketEnv) pendingBooking(t *testing.T, seatIDs ...uuid.UUID) *entity.Booking {
	t.Helper()
	resp, err := e.service.CreateBooking(context.Background(), e.userID.String(), e.book(seatIDs...))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)
	return e.store.bookings[id]
}

func TestCreatePayment_AmountMustMatchTotal(t *testing.T) {
	env := newTicketEnv(t)
	booking := env.pendingBooking(t, env.seatA1, env.seatA2) // total 25

	_, err := env.service.CreatePayment(context.Background(), env.userID.String(),
		&request.CreatePaymentRequest{
			BookingID: booking.ID.String(),
			Amount:    decimal.NewFromInt(20),
			Method:    string(entity.PaymentMethodCreditCard),
		})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, env.store.payments)
}

func TestCreatePayment_SecondPaymentRejected(t *testing.T) {
	env := newTicketEnv(t)
	booking := env.pendingBooking(t, env.seatA1)

	req := &request.CreatePaymentRequest{
		BookingID: booking.ID.String(),
		Amount:    decimal.NewFromInt(10),
		Method:    string(entity.PaymentMethodPaypal),
	}

	payment, err := env.service.CreatePayment(context.Background(), env.userID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, payment.Status)

	_, err = env.service.CreatePayment(context.Background(), env.userID.String(), req)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, env.store.payments, 1)
}

func TestCreatePayment_ConcurrentAttemptsCreateOnePayment(t *testing.T) {
	env := newTicketEnv(t)
	booking := env.pendingBooking(t, env.seatA1)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.CreatePayment(context.Background(), env.userID.String(),
				&request.CreatePaymentRequest{
					BookingID: booking.ID.String(),
					Amount:    decimal.NewFromInt(10),
					Method:    string(entity.PaymentMethodCreditCard),
				})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}

	// The booking row lock serializes the attempts; only the first finds no
	// existing payment
	assert.Equal(t, 1, won)
	assert.Len(t, env.store.payments, 1)
}

func TestCreatePayment_UnknownBooking(t *testing.T) {
	env := newTicketEnv(t)

	_, err := env.service.CreatePayment(context.Background(), env.userID.String(),
		&request.CreatePaymentRequest{
			BookingID: uuid.New().String(),
			Amount:    decimal.NewFromInt(10),
			Method:    string(entity.PaymentMethodCash),
		})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePayment_CompletionConfirmsBooking(t *testing.T) {
	env := newTicketEnv(t)
	booking := env.pendingBooking(t, env.seatA3)

	payment, err := env.service.CreatePayment(context.Background(), env.userID.String(),
		&request.CreatePaymentRequest{
			BookingID: booking.ID.String(),
			Amount:    decimal.NewFromInt(20),
			Method:    string(entity.PaymentMethodDebitCard),
		})
	require.NoError(t, err)

	completed := string(entity.PaymentStatusCompleted)
	txID := "gw-12345"
	updated, err := env.service.UpdatePayment(context.Background(), payment.ID,
		&request.UpdatePaymentRequest{Status: &completed, TransactionID: &txID})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, updated.Status)
	require.NotNil(t, updated.TransactionID)
	assert.Equal(t, txID, *updated.TransactionID)

	// Booking confirmed in the same commit
	assert.Equal(t, entity.BookingStatusConfirmed, env.store.bookings[booking.ID].Status)
}

func TestUpdatePayment_RejectsIllegalTransition(t *testing.T) {
	env := newTicketEnv(t)
	booking := env.pendingBooking(t, env.seatA1)

	payment, err := env.service.CreatePayment(context.Background(), env.userID.String(),
		&request.CreatePaymentRequest{
			BookingID: booking.ID.String(),
			Amount:    decimal.NewFromInt(10),
			Method:    string(entity.PaymentMethodCreditCard),
		})
	require.NoError(t, err)

	completed := string(entity.PaymentStatusCompleted)
	_, err = env.service.UpdatePayment(context.Background(), payment.ID,
		&request.UpdatePaymentRequest{Status: &completed})
	require.NoError(t, err)

	// completed -> pending is off the state machine
	pending := string(entity.PaymentStatusPending)
	_, err = env.service.UpdatePayment(context.Background(), payment.ID,
		&request.UpdatePaymentRequest{Status: &pending})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// completed -> refunded is allowed
	refunded := string(entity.PaymentStatusRefunded)
	updated, err := env.service.UpdatePayment(context.Background(), payment.ID,
		&request.UpdatePaymentRequest{Status: &refunded})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, updated.Status)
}
