package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/database"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// referenceAttempts bounds booking reference regeneration on collision.
const referenceAttempts = 5

type TicketService interface {
	// Public endpoints
	GetAvailableSeats(ctx context.Context, showtimeID string) (*response.AvailabilityResponse, error)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID string, bookingID string) error

	// Payment
	CreatePayment(ctx context.Context, userID string, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)
	UpdatePayment(ctx context.Context, paymentID string, req *request.UpdatePaymentRequest) (*response.PaymentResponse, error)

	// Admin / support endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, filter BookingListFilter, req *request.PaginatedRequest) ([]*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	CreateSupportBooking(ctx context.Context, agentID string, req *request.CreateSupportBookingRequest) (*response.BookingResponse, error)
}

// BookingListFilter carries the query-string filters for listing bookings.
type BookingListFilter struct {
	UserID *string
	Status *string
}

type ticketService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) GetAvailableSeats(ctx context.Context, showtimeID string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, ErrInvalidArgument)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, ErrNotFound)
	}

	// Full seat catalog of the theater, ordered by row then number
	seats, err := s.repo.Seat.FindByTheaterID(ctx, showtime.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater seats: %w", err)
	}

	// Seats held by pending or confirmed bookings
	reservedIDs, err := s.repo.SeatBooking.FindReservedSeatIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reserved seats: %w", err)
	}

	reserved := make(map[uuid.UUID]bool, len(reservedIDs))
	for _, seatID := range reservedIDs {
		reserved[seatID] = true
	}

	available := make([]response.AvailableSeatResponse, 0, len(seats))
	for _, seat := range seats {
		if reserved[seat.ID] {
			continue
		}
		available = append(available, response.AvailableSeatResponse{
			SeatResponse: response.SeatToResponse(seat),
			Price:        SeatPrice(showtime.BasePrice, seat.SeatType),
		})
	}

	s.log.Info("Availability computed",
		zap.String("showtime_id", showtimeID),
		zap.Int("total_seats", len(seats)),
		zap.Int("available", len(available)),
	)

	return &response.AvailabilityResponse{
		ShowtimeID:     showtimeID,
		AvailableSeats: available,
	}, nil
}

func (s *ticketService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrInvalidArgument)
	}

	return s.createBooking(ctx, userUUID, req.ShowtimeID, req.SeatIDs, false, nil)
}

func (s *ticketService) CreateSupportBooking(ctx context.Context, agentID string, req *request.CreateSupportBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create support booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	agentUUID, err := uuid.Parse(agentID)
	if err != nil {
		return nil, fmt.Errorf("invalid agent ID format %s: %w", agentID, ErrInvalidArgument)
	}

	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", req.UserID, ErrInvalidArgument)
	}

	customer, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, ErrNotFound)
	}

	return s.createBooking(ctx, userUUID, req.ShowtimeID, req.SeatIDs, true, &agentUUID)
}

// createBooking runs the whole read-validate-write sequence inside one
// transaction. The showtime row is locked FOR UPDATE first, so concurrent
// attempts for the same showtime serialize and the seat availability check
// stays valid until commit. Either the booking and all its seats are written,
// or nothing is.
func (s *ticketService) createBooking(ctx context.Context, userID uuid.UUID, showtimeIDStr string, seatIDStrs []string, bySupport bool, agentID *uuid.UUID) (*response.BookingResponse, error) {
	showtimeID, err := uuid.Parse(showtimeIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeIDStr, ErrInvalidArgument)
	}

	if len(seatIDStrs) == 0 {
		return nil, fmt.Errorf("booking requires at least one seat: %w", ErrInvalidArgument)
	}

	seatIDs := make([]uuid.UUID, len(seatIDStrs))
	requested := make(map[uuid.UUID]bool, len(seatIDStrs))
	for i, seatIDStr := range seatIDStrs {
		seatID, err := uuid.Parse(seatIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid seat ID format %s: %w", seatIDStr, ErrInvalidArgument)
		}
		if requested[seatID] {
			return nil, fmt.Errorf("seat %s requested twice: %w", seatIDStr, ErrInvalidArgument)
		}
		seatIDs[i] = seatID
		requested[seatID] = true
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	showtimeRepo := s.repo.Showtime.WithTx(tx)
	seatRepo := s.repo.Seat.WithTx(tx)
	seatBookingRepo := s.repo.SeatBooking.WithTx(tx)
	bookingRepo := s.repo.Booking.WithTx(tx)

	// Serialization point for this showtime
	showtime, err := showtimeRepo.LockByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("lock showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeIDStr, ErrNotFound)
	}
	if !showtime.IsActive {
		return nil, fmt.Errorf("showtime %s is not open for booking: %w", showtimeIDStr, ErrInvalidArgument)
	}

	// Every requested seat must belong to the showtime's theater
	seats, err := seatRepo.FindByTheaterID(ctx, showtime.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater seats: %w", err)
	}

	catalog := make(map[uuid.UUID]*entity.Seat, len(seats))
	for _, seat := range seats {
		catalog[seat.ID] = seat
	}

	for _, seatID := range seatIDs {
		if catalog[seatID] == nil {
			return nil, fmt.Errorf("seat %s does not belong to this showtime: %w", seatID.String(), ErrInvalidArgument)
		}
	}

	// No requested seat may already be held
	reservedIDs, err := seatBookingRepo.FindReservedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find reserved seats: %w", err)
	}

	reserved := make(map[uuid.UUID]bool, len(reservedIDs))
	for _, seatID := range reservedIDs {
		reserved[seatID] = true
	}

	for _, seatID := range seatIDs {
		if reserved[seatID] {
			seat := catalog[seatID]
			return nil, fmt.Errorf("seat %s (%s%d) is already booked: %w",
				seatID.String(), seat.SeatRow, seat.SeatNumber, ErrConflict)
		}
	}

	// Price each seat off the showtime base price
	prices := make([]decimal.Decimal, len(seatIDs))
	totalPrice := decimal.Zero
	for i, seatID := range seatIDs {
		prices[i] = SeatPrice(showtime.BasePrice, catalog[seatID].SeatType)
		totalPrice = totalPrice.Add(prices[i])
	}

	reference, err := s.uniqueReference(ctx, bookingRepo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:           userID,
		ShowtimeID:       showtimeID,
		Reference:        reference,
		Status:           entity.BookingStatusPending,
		TotalPrice:       totalPrice,
		CreatedBySupport: bySupport,
		SupportAgentID:   agentID,
	}

	if err := bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	seatBookings := make([]*entity.SeatBooking, len(seatIDs))
	for i, seatID := range seatIDs {
		seatBookings[i] = &entity.SeatBooking{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID: booking.ID,
			SeatID:    seatID,
			Price:     prices[i],
		}
	}

	if err := seatBookingRepo.CreateBatch(ctx, seatBookings); err != nil {
		return nil, fmt.Errorf("create seat bookings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit booking transaction", zap.Error(err))
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("user_id", userID.String()),
		zap.Int("seat_count", len(seatIDs)),
		zap.String("total_price", totalPrice.String()),
		zap.Bool("by_support", bySupport),
	)

	bookedSeats := make([]response.BookedSeatResponse, len(seatIDs))
	for i, seatID := range seatIDs {
		seat := catalog[seatID]
		bookedSeats[i] = response.BookedSeatResponse{
			SeatID:     seatID.String(),
			SeatRow:    seat.SeatRow,
			SeatNumber: seat.SeatNumber,
			SeatType:   seat.SeatType,
			Price:      prices[i],
		}
	}

	resp := response.BookingToResponse(booking, bookedSeats, nil)
	return &resp, nil
}

// uniqueReference draws booking references until one is unused, bounded by
// referenceAttempts.
func (s *ticketService) uniqueReference(ctx context.Context, bookingRepo repository.BookingRepository) (string, error) {
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		reference := utils.GenerateBookingReference()

		existing, err := bookingRepo.FindByReference(ctx, reference)
		if err != nil {
			return "", fmt.Errorf("check booking reference: %w", err)
		}
		if existing == nil {
			return reference, nil
		}

		s.log.Warn("Booking reference collision",
			zap.String("reference", reference),
			zap.Int("attempt", attempt+1),
		)
	}

	return "", fmt.Errorf("could not generate a unique booking reference after %d attempts", referenceAttempts)
}

func (s *ticketService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrInvalidArgument)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp, err := s.buildBookingResponse(ctx, booking)
		if err != nil {
			return nil, err
		}
		bookingResponses[i] = *resp
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *ticketService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", reference, ErrNotFound)
	}

	return s.buildBookingResponse(ctx, booking)
}

func (s *ticketService) CancelBooking(ctx context.Context, userID string, bookingID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, ErrInvalidArgument)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, ErrInvalidArgument)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	if booking.UserID != userUUID {
		return fmt.Errorf("booking %s belongs to another user: %w", bookingID, ErrUnauthorized)
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return fmt.Errorf("booking status is %s, cannot cancel: %w", booking.Status, ErrInvalidArgument)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("reference", booking.Reference),
	)

	return nil
}

// ==================== PAYMENT METHODS ====================

func (s *ticketService) CreatePayment(ctx context.Context, userID string, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrInvalidArgument)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, ErrInvalidArgument)
	}

	// The booking row is locked FOR UPDATE, so concurrent payment attempts for
	// the same booking serialize and the one-payment check stays valid until
	// commit.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	paymentRepo := s.repo.Payment.WithTx(tx)

	booking, err := s.repo.Booking.WithTx(tx).LockByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrNotFound)
	}

	if booking.UserID != userUUID {
		return nil, fmt.Errorf("booking %s belongs to another user: %w", req.BookingID, ErrUnauthorized)
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("booking status is %s, cannot pay: %w", booking.Status, ErrInvalidArgument)
	}

	// Exact match against the booking total
	if !req.Amount.Equal(booking.TotalPrice) {
		return nil, fmt.Errorf("payment amount %s does not match booking total %s: %w",
			req.Amount.String(), booking.TotalPrice.String(), ErrInvalidArgument)
	}

	// One payment per booking
	existing, err := paymentRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("booking %s already has a payment: %w", req.BookingID, ErrConflict)
	}

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: bookingID,
		Amount:    req.Amount,
		Method:    entity.PaymentMethod(req.Method),
		Status:    entity.PaymentStatusPending,
		Details:   req.Details,
	}

	if err := paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit payment transaction", zap.Error(err))
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	s.log.Info("Payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.String("amount", payment.Amount.String()),
		zap.String("method", string(payment.Method)),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *ticketService) UpdatePayment(ctx context.Context, paymentID string, req *request.UpdatePaymentRequest) (*response.PaymentResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment ID format %s: %w", paymentID, ErrInvalidArgument)
	}

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
	}

	patch := entity.PaymentPatch{TransactionID: req.TransactionID}
	if req.Status != nil {
		status := entity.PaymentStatus(*req.Status)
		patch.Status = &status
	}

	if patch.Status != nil && *patch.Status != payment.Status {
		if !payment.Status.CanTransitionTo(*patch.Status) {
			return nil, fmt.Errorf("payment status %s cannot become %s: %w",
				payment.Status, *patch.Status, ErrInvalidArgument)
		}
	}

	completing := patch.Status != nil && *patch.Status == entity.PaymentStatusCompleted && payment.Status != entity.PaymentStatusCompleted

	if patch.Status != nil {
		payment.Status = *patch.Status
	}
	if patch.TransactionID != nil {
		payment.TransactionID = patch.TransactionID
	}
	payment.UpdatedAt = time.Now()

	// Completion confirms the booking in the same transaction, so the payment
	// and booking can never disagree.
	if completing {
		tx, err := s.db.Begin(ctx)
		if err != nil {
			return nil, fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		booking, err := s.repo.Booking.WithTx(tx).FindByID(ctx, payment.BookingID)
		if err != nil {
			return nil, fmt.Errorf("find booking: %w", err)
		}
		if booking == nil {
			return nil, fmt.Errorf("booking %s: %w", payment.BookingID.String(), ErrNotFound)
		}

		if !booking.Status.CanTransitionTo(entity.BookingStatusConfirmed) {
			return nil, fmt.Errorf("booking status is %s, cannot confirm: %w", booking.Status, ErrInvalidArgument)
		}

		if err := s.repo.Payment.WithTx(tx).Update(ctx, payment); err != nil {
			return nil, fmt.Errorf("update payment: %w", err)
		}

		if err := s.repo.Booking.WithTx(tx).UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
			return nil, fmt.Errorf("confirm booking: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit payment completion: %w", err)
		}

		s.log.Info("Payment completed, booking confirmed",
			zap.String("payment_id", paymentID),
			zap.String("booking_id", booking.ID.String()),
		)
	} else {
		if err := s.repo.Payment.Update(ctx, payment); err != nil {
			return nil, fmt.Errorf("update payment: %w", err)
		}

		s.log.Info("Payment updated",
			zap.String("payment_id", paymentID),
			zap.String("status", string(payment.Status)),
		)
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *ticketService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, ErrInvalidArgument)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	return s.buildBookingResponse(ctx, booking)
}

func (s *ticketService) GetBookings(ctx context.Context, filter BookingListFilter, req *request.PaginatedRequest) ([]*response.BookingResponse, error) {
	repoFilter := repository.BookingFilter{}

	if filter.UserID != nil {
		userID, err := uuid.Parse(*filter.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format %s: %w", *filter.UserID, ErrInvalidArgument)
		}
		repoFilter.UserID = &userID
	}

	if filter.Status != nil {
		status := entity.BookingStatus(*filter.Status)
		repoFilter.Status = &status
	}

	bookings, err := s.repo.Booking.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	bookingResponses := make([]*response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp, err := s.buildBookingResponse(ctx, booking)
		if err != nil {
			return nil, err
		}
		bookingResponses[i] = resp
	}

	return bookingResponses, nil
}

func (s *ticketService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, ErrInvalidArgument)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	patch := entity.BookingPatch{}
	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		patch.Status = &status
	}

	if patch.Status != nil && *patch.Status != booking.Status {
		if !booking.Status.CanTransitionTo(*patch.Status) {
			return nil, fmt.Errorf("booking status %s cannot become %s: %w",
				booking.Status, *patch.Status, ErrInvalidArgument)
		}

		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, *patch.Status); err != nil {
			return nil, fmt.Errorf("update booking status: %w", err)
		}
		booking.Status = *patch.Status

		s.log.Info("Booking status updated",
			zap.String("booking_id", bookingID),
			zap.String("status", string(booking.Status)),
		)
	}

	return s.buildBookingResponse(ctx, booking)
}

// ==================== HELPER METHODS ====================

func (s *ticketService) buildBookingResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	seatBookings, err := s.repo.SeatBooking.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find seat bookings: %w", err)
	}

	bookedSeats := make([]response.BookedSeatResponse, len(seatBookings))
	for i, sb := range seatBookings {
		bookedSeats[i] = response.BookedSeatResponse{
			SeatID: sb.SeatID.String(),
			Price:  sb.Price,
		}

		seat, err := s.repo.Seat.FindByID(ctx, sb.SeatID)
		if err != nil {
			return nil, fmt.Errorf("find seat: %w", err)
		}
		if seat != nil {
			bookedSeats[i].SeatRow = seat.SeatRow
			bookedSeats[i].SeatNumber = seat.SeatNumber
			bookedSeats[i].SeatType = seat.SeatType
		}
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}

	resp := response.BookingToResponse(booking, bookedSeats, payment)
	return &resp, nil
}
