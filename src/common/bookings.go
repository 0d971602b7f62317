package common

import (
	"context"
	"errors"
	"fmt"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomUnavailable    = errors.New("room is not available")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingAlreadyPaid = errors.New("booking already paid")
	ErrNoBookingMetadata  = errors.New("no booking ID in session metadata")
)

// CheckAvailability reports whether the room is free for [checkIn, checkOut].
// Overlap uses inclusive bounds: an existing booking blocks the range when
// existing.check_in <= checkOut AND existing.check_out >= checkIn. A query
// error is returned as an error, never as a silent "not available".
func CheckAvailability(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := tx.
		Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("check_in_date <= ?", checkOut).
		Where("check_out_date >= ?", checkIn).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// CreateBooking runs the availability check and the insert inside one
// transaction so two concurrent requests for the same room and dates cannot
// both pass the check. The confirmation email is best effort.
func CreateBooking(userID uint, body *types.CreateBookingRequestBody) (*models.Booking, error) {
	checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, body.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, body.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, errors.New("checkOutDate must be after checkInDate")
	}

	var booking models.Booking
	var room models.Room
	gdb := db.GetDb()
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: body.Room}).
			Preload("Hotel").
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		available, err := CheckAvailability(tx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if !available {
			return ErrRoomUnavailable
		}

		nights := Nights(checkIn, checkOut)
		booking = models.Booking{
			UserID:        userID,
			RoomID:        room.ID,
			HotelID:       room.HotelID,
			CheckInDate:   checkIn,
			CheckOutDate:  checkOut,
			Guests:        body.Guests,
			TotalPrice:    room.PricePerNight * float64(nights),
			Status:        string(types.BOOKING_PENDING),
			PaymentMethod: types.PAYMENT_METHOD_DEFAULT,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	sendBookingConfirmation(&booking, &room)
	return &booking, nil
}

// IssuePaymentSession creates a Stripe Checkout Session for an unpaid booking
// and stores the session id on the booking before returning, so a lost
// webhook can still be reconciled later. Calling it again for the same
// booking issues a fresh session and overwrites the stored id.
func IssuePaymentSession(ctx context.Context, bookingID, userID uint) (*stripe.CheckoutSession, error) {
	gdb := db.GetDb()
	var booking models.Booking
	if err := gdb.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingID}).
		Preload("Room").
		Preload("Hotel").
		Preload("User").
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.IsPaid {
		return nil, ErrBookingAlreadyPaid
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	name := fmt.Sprintf("%s - %s", booking.Hotel.Name, booking.Room.RoomType)
	description := fmt.Sprintf(
		"Check-in: %s | Check-out: %s",
		booking.CheckInDate.Format(config.DATE_PARSE_FORMAT),
		booking.CheckOutDate.Format(config.DATE_PARSE_FORMAT),
	)
	params := &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name:        stripe.String(name),
						Description: stripe.String(description),
					},
					UnitAmount: stripe.Int64(int64(math.Round(booking.TotalPrice * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/my-bookings?payment_success=true&session_id={CHECKOUT_SESSION_ID}&booking_id=%d", frontend, bookingID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/my-bookings?payment_canceled=true&booking_id=%d", frontend, bookingID)),
		Metadata: map[string]string{
			"bookingId": strconv.Itoa(int(bookingID)),
			"userId":    strconv.Itoa(int(userID)),
			"requestId": uuid.NewString(),
		},
		CustomerEmail: stripe.String(booking.User.Email),
	}
	session, err := lib.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := gdb.
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("stripe_session_id", session.ID).
		Error; err != nil {
		return nil, err
	}
	return session, nil
}

type ReconcileResult struct {
	BookingID uint   `json:"bookingId"`
	IsPaid    bool   `json:"isPaid"`
	Applied   bool   `json:"-"`
	Message   string `json:"message"`
}

// ReconcileBySession is the single reconciliation operation. The webhook,
// the session-id pull and the force check all end up here, so they cannot
// diverge: same predicate (provider reports "paid"), same mutation. The
// unpaid->paid transition is an atomic conditional update and the
// confirmation email goes out only when this call actually changed the row.
func ReconcileBySession(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	session, err := lib.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	gdb := db.GetDb()
	var booking models.Booking
	query := gdb.Model(&models.Booking{})
	if raw, ok := session.Metadata["bookingId"]; ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrNoBookingMetadata
		}
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("stripe_session_id = ?", sessionID)
	}
	if err := query.First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		msg := fmt.Sprintf("Payment status: %s", session.PaymentStatus)
		if booking.IsPaid {
			msg = "Already paid"
		}
		return &ReconcileResult{BookingID: booking.ID, IsPaid: booking.IsPaid, Message: msg}, nil
	}

	now := time.Now()
	res := gdb.
		Model(&models.Booking{}).
		Where("id = ? AND is_paid = ?", booking.ID, false).
		Updates(map[string]any{
			"is_paid":           true,
			"payment_method":    types.PAYMENT_METHOD_STRIPE,
			"payment_date":      now,
			"stripe_session_id": sessionID,
			"status":            string(types.BOOKING_CONFIRMED),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	applied := res.RowsAffected > 0
	if applied {
		sendPaymentConfirmation(booking.ID)
		return &ReconcileResult{BookingID: booking.ID, IsPaid: true, Applied: true, Message: "Payment verified and updated successfully"}, nil
	}
	return &ReconcileResult{BookingID: booking.ID, IsPaid: true, Message: "Already paid"}, nil
}

// ForceCheckPayment reconciles by booking id. A booking without a stored
// session id is a no-op that just reports the current state.
func ForceCheckPayment(ctx context.Context, bookingID uint) (*ReconcileResult, error) {
	gdb := db.GetDb()
	var booking models.Booking
	if err := gdb.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingID}).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.StripeSessionId == nil {
		msg := "Payment not completed yet"
		if booking.IsPaid {
			msg = "Already paid"
		}
		return &ReconcileResult{BookingID: booking.ID, IsPaid: booking.IsPaid, Message: msg}, nil
	}
	return ReconcileBySession(ctx, *booking.StripeSessionId)
}

// SweepUnpaidBookings is the scheduled polling fallback for lost webhooks.
func SweepUnpaidBookings() {
	gdb := db.GetDb()
	var bookings []models.Booking
	if err := gdb.
		Model(&models.Booking{}).
		Where("is_paid = ? AND stripe_session_id IS NOT NULL", false).
		Limit(100).
		Find(&bookings).
		Error; err != nil {
		log.Printf("[sweep] Error listing unpaid bookings: %s\n", err.Error())
		return
	}
	for _, b := range bookings {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		result, err := ReconcileBySession(ctx, *b.StripeSessionId)
		cancel()
		if err != nil {
			log.Printf("[sweep] Error reconciling booking %d: %s\n", b.ID, err.Error())
			continue
		}
		if result.Applied {
			log.Printf("[sweep] Booking %d marked paid from session %s\n", b.ID, *b.StripeSessionId)
		}
	}
}

type DashboardData struct {
	TotalBookings int64            `json:"totalBookings"`
	TotalRevenue  float64          `json:"totalRevenue"`
	Bookings      []models.Booking `json:"bookings"`
}

// OwnerDashboard aggregates bookings across every hotel the owner has.
// Revenue counts paid bookings only, over ALL bookings, not just the ten
// most recent returned for display.
func OwnerDashboard(ownerID uint) (*DashboardData, error) {
	gdb := db.GetDb()
	var hotelIds []uint
	if err := gdb.
		Model(&models.Hotel{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &hotelIds).
		Error; err != nil {
		return nil, err
	}
	data := &DashboardData{Bookings: []models.Booking{}}
	if len(hotelIds) == 0 {
		return data, nil
	}

	if err := gdb.
		Model(&models.Booking{}).
		Where("hotel_id IN (?)", hotelIds).
		Preload("User").
		Preload("Room").
		Preload("Hotel").
		Order("created_at DESC").
		Limit(10).
		Find(&data.Bookings).
		Error; err != nil {
		return nil, err
	}
	if err := gdb.
		Model(&models.Booking{}).
		Where("hotel_id IN (?)", hotelIds).
		Count(&data.TotalBookings).
		Error; err != nil {
		return nil, err
	}
	var revenue *float64
	if err := gdb.
		Model(&models.Booking{}).
		Where("hotel_id IN (?)", hotelIds).
		Where("is_paid = ?", true).
		Select("SUM(total_price)").
		Scan(&revenue).
		Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		data.TotalRevenue = *revenue
	}
	return data, nil
}
