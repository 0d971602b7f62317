package common

import (
	"context"
	"fmt"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type BookingsSuite struct {
	suite.Suite
	DB        *gorm.DB
	User      models.User
	Hotel     models.Hotel
	MailCount int
}

func (s *BookingsSuite) SetupSuite() {
	gormDB, err := gorm.Open(sqlite.Open("file:bookingstest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	inner, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error accessing inner db instance: %s", err.Error())
	}
	inner.SetMaxOpenConns(1)

	err = gormDB.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	db.NewDB(gormDB)
	s.DB = gormDB

	SendMail = func(input *lib.SendMailInput) error {
		s.MailCount++
		return nil
	}

	s.User = models.User{Username: "booker", Email: "booker@example.com", Password: "x", Role: types.ROLE_USER}
	if err := gormDB.Create(&s.User).Error; err != nil {
		log.Fatalf("Could not create user due to error: %s\n", err.Error())
	}
	s.Hotel = models.Hotel{Name: "Test Lodge", Slug: "test-lodge", City: "Lisbon", OwnerID: s.User.ID}
	if err := gormDB.Create(&s.Hotel).Error; err != nil {
		log.Fatalf("Could not create hotel due to error: %s\n", err.Error())
	}
}

func (s *BookingsSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		return
	}
	inner.Close()
}

func (s *BookingsSuite) createRoom(price float64) models.Room {
	room := models.Room{HotelID: s.Hotel.ID, RoomType: "Double", PricePerNight: price, IsAvailable: true}
	if err := s.DB.Create(&room).Error; err != nil {
		log.Fatalf("Could not create room due to error: %s\n", err.Error())
	}
	return room
}

func (s *BookingsSuite) seedBooking(roomID uint, checkIn, checkOut time.Time) models.Booking {
	booking := models.Booking{
		UserID:        s.User.ID,
		RoomID:        roomID,
		HotelID:       s.Hotel.ID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		TotalPrice:    100,
		Status:        string(types.BOOKING_PENDING),
		PaymentMethod: types.PAYMENT_METHOD_DEFAULT,
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		log.Fatalf("Could not create booking due to error: %s\n", err.Error())
	}
	return booking
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *BookingsSuite) TestNights() {
	assert.Equal(s.T(), 3, Nights(date(2025, 3, 1), date(2025, 3, 4)))
	assert.Equal(s.T(), 1, Nights(date(2025, 3, 1), date(2025, 3, 2)))
	halfDay := date(2025, 3, 1).Add(12 * time.Hour)
	assert.Equal(s.T(), 1, Nights(date(2025, 3, 1), halfDay))
}

func (s *BookingsSuite) TestCheckAvailability() {
	room := s.createRoom(80)
	s.seedBooking(room.ID, date(2025, 3, 10), date(2025, 3, 14))

	cases := []struct {
		name      string
		in, out   time.Time
		available bool
	}{
		{"before the stay", date(2025, 3, 1), date(2025, 3, 5), true},
		{"after the stay", date(2025, 3, 20), date(2025, 3, 22), true},
		{"inside the stay", date(2025, 3, 11), date(2025, 3, 13), false},
		{"spanning the stay", date(2025, 3, 9), date(2025, 3, 15), false},
		{"ending on check-in day", date(2025, 3, 8), date(2025, 3, 10), false},
		{"starting on check-out day", date(2025, 3, 14), date(2025, 3, 16), false},
		{"day after check-out", date(2025, 3, 15), date(2025, 3, 16), true},
	}
	for _, c := range cases {
		s.Run(c.name, func() {
			got, err := CheckAvailability(s.DB, room.ID, c.in, c.out)
			assert.Nil(s.T(), err)
			assert.Equal(s.T(), c.available, got)
		})
	}
}

func (s *BookingsSuite) TestCreateBooking() {
	room := s.createRoom(100)

	s.Run("Should compute total from nights and rate", func() {
		mailsBefore := s.MailCount
		booking, err := CreateBooking(s.User.ID, &types.CreateBookingRequestBody{
			Room:         room.ID,
			CheckInDate:  "2025-03-01",
			CheckOutDate: "2025-03-04",
			Guests:       2,
		})
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), float64(300), booking.TotalPrice)
		assert.Equal(s.T(), string(types.BOOKING_PENDING), booking.Status)
		assert.Equal(s.T(), types.PAYMENT_METHOD_DEFAULT, booking.PaymentMethod)
		assert.Equal(s.T(), mailsBefore+1, s.MailCount)
	})

	s.Run("Should refuse an overlapping range", func() {
		_, err := CreateBooking(s.User.ID, &types.CreateBookingRequestBody{
			Room:         room.ID,
			CheckInDate:  "2025-03-03",
			CheckOutDate: "2025-03-06",
			Guests:       1,
		})
		assert.ErrorIs(s.T(), err, ErrRoomUnavailable)
	})

	s.Run("Should refuse an unknown room", func() {
		_, err := CreateBooking(s.User.ID, &types.CreateBookingRequestBody{
			Room:         99999,
			CheckInDate:  "2025-04-01",
			CheckOutDate: "2025-04-03",
			Guests:       1,
		})
		assert.ErrorIs(s.T(), err, ErrRoomNotFound)
	})

	s.Run("Should refuse inverted dates", func() {
		_, err := CreateBooking(s.User.ID, &types.CreateBookingRequestBody{
			Room:         room.ID,
			CheckInDate:  "2025-05-04",
			CheckOutDate: "2025-05-01",
			Guests:       1,
		})
		assert.NotNil(s.T(), err)
	})
}

func (s *BookingsSuite) TestReconcileBySession() {
	room := s.createRoom(120)
	booking := s.seedBooking(room.ID, date(2025, 6, 1), date(2025, 6, 3))
	sessionId := "cs_test_common_1"
	assert.Nil(s.T(), s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("stripe_session_id", sessionId).Error)

	retrieve := RetrieveCheckoutSessionStub(sessionId, booking.ID, stripe.CheckoutSessionPaymentStatusUnpaid)
	restore := lib.RetrieveCheckoutSession
	defer func() { lib.RetrieveCheckoutSession = restore }()
	lib.RetrieveCheckoutSession = retrieve

	s.Run("Should not mutate while the provider reports unpaid", func() {
		mailsBefore := s.MailCount
		result, err := ReconcileBySession(context.Background(), sessionId)
		assert.Nil(s.T(), err)
		assert.False(s.T(), result.IsPaid)
		assert.False(s.T(), result.Applied)

		var after models.Booking
		assert.Nil(s.T(), s.DB.First(&after, booking.ID).Error)
		assert.False(s.T(), after.IsPaid)
		assert.Equal(s.T(), types.PAYMENT_METHOD_DEFAULT, after.PaymentMethod)
		assert.Equal(s.T(), mailsBefore, s.MailCount)
	})

	s.Run("Should apply the paid transition exactly once", func() {
		lib.RetrieveCheckoutSession = RetrieveCheckoutSessionStub(sessionId, booking.ID, stripe.CheckoutSessionPaymentStatusPaid)
		mailsBefore := s.MailCount

		result, err := ReconcileBySession(context.Background(), sessionId)
		assert.Nil(s.T(), err)
		assert.True(s.T(), result.IsPaid)
		assert.True(s.T(), result.Applied)
		assert.Equal(s.T(), mailsBefore+1, s.MailCount)

		var first models.Booking
		assert.Nil(s.T(), s.DB.First(&first, booking.ID).Error)
		assert.True(s.T(), first.IsPaid)
		assert.Equal(s.T(), types.PAYMENT_METHOD_STRIPE, first.PaymentMethod)
		assert.Equal(s.T(), string(types.BOOKING_CONFIRMED), first.Status)
		assert.NotNil(s.T(), first.PaymentDate)

		result, err = ReconcileBySession(context.Background(), sessionId)
		assert.Nil(s.T(), err)
		assert.True(s.T(), result.IsPaid)
		assert.False(s.T(), result.Applied)
		assert.Equal(s.T(), "Already paid", result.Message)
		assert.Equal(s.T(), mailsBefore+1, s.MailCount)

		var second models.Booking
		assert.Nil(s.T(), s.DB.First(&second, booking.ID).Error)
		assert.Equal(s.T(), first.PaymentDate.Unix(), second.PaymentDate.Unix())
	})

	s.Run("Should fall back to the session id without metadata", func() {
		lib.RetrieveCheckoutSession = func(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
			return &stripe.CheckoutSession{
				ID:            id,
				PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			}, nil
		}
		result, err := ReconcileBySession(context.Background(), sessionId)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), booking.ID, result.BookingID)
	})

	s.Run("Should report not found for an unknown session", func() {
		lib.RetrieveCheckoutSession = func(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
			return &stripe.CheckoutSession{
				ID:            id,
				PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			}, nil
		}
		_, err := ReconcileBySession(context.Background(), "cs_test_missing")
		assert.ErrorIs(s.T(), err, ErrBookingNotFound)
	})
}

func (s *BookingsSuite) TestForceCheckPayment() {
	room := s.createRoom(90)

	s.Run("Should be a no-op without a stored session id", func() {
		booking := s.seedBooking(room.ID, date(2025, 7, 1), date(2025, 7, 3))
		mailsBefore := s.MailCount

		result, err := ForceCheckPayment(context.Background(), booking.ID)
		assert.Nil(s.T(), err)
		assert.False(s.T(), result.IsPaid)
		assert.False(s.T(), result.Applied)
		assert.Equal(s.T(), "Payment not completed yet", result.Message)

		var after models.Booking
		assert.Nil(s.T(), s.DB.First(&after, booking.ID).Error)
		assert.False(s.T(), after.IsPaid)
		assert.Nil(s.T(), after.PaymentDate)
		assert.Equal(s.T(), mailsBefore, s.MailCount)
	})

	s.Run("Should report not found for an unknown booking", func() {
		_, err := ForceCheckPayment(context.Background(), 99999)
		assert.ErrorIs(s.T(), err, ErrBookingNotFound)
	})

	s.Run("Should reconcile through the stored session id", func() {
		booking := s.seedBooking(room.ID, date(2025, 7, 10), date(2025, 7, 12))
		sessionId := "cs_test_force_1"
		assert.Nil(s.T(), s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("stripe_session_id", sessionId).Error)

		restore := lib.RetrieveCheckoutSession
		defer func() { lib.RetrieveCheckoutSession = restore }()
		lib.RetrieveCheckoutSession = RetrieveCheckoutSessionStub(sessionId, booking.ID, stripe.CheckoutSessionPaymentStatusPaid)

		result, err := ForceCheckPayment(context.Background(), booking.ID)
		assert.Nil(s.T(), err)
		assert.True(s.T(), result.IsPaid)
		assert.True(s.T(), result.Applied)
	})
}

func (s *BookingsSuite) TestSweepUnpaidBookings() {
	room := s.createRoom(75)
	booking := s.seedBooking(room.ID, date(2025, 9, 1), date(2025, 9, 3))
	sessionId := "cs_test_sweep_1"
	assert.Nil(s.T(), s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("stripe_session_id", sessionId).Error)

	restore := lib.RetrieveCheckoutSession
	defer func() { lib.RetrieveCheckoutSession = restore }()
	lib.RetrieveCheckoutSession = func(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
		status := stripe.CheckoutSessionPaymentStatusUnpaid
		if id == sessionId {
			status = stripe.CheckoutSessionPaymentStatusPaid
		}
		return &stripe.CheckoutSession{ID: id, PaymentStatus: status}, nil
	}

	SweepUnpaidBookings()

	var after models.Booking
	assert.Nil(s.T(), s.DB.First(&after, booking.ID).Error)
	assert.True(s.T(), after.IsPaid)
	assert.Equal(s.T(), string(types.BOOKING_CONFIRMED), after.Status)
}

func (s *BookingsSuite) TestOwnerDashboard() {
	owner := models.User{Username: "dashhost", Email: "dashhost@example.com", Password: "x", Role: types.ROLE_HOST}
	assert.Nil(s.T(), s.DB.Create(&owner).Error)

	s.Run("Should return zero values for an owner with no hotels", func() {
		data, err := OwnerDashboard(owner.ID)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), int64(0), data.TotalBookings)
		assert.Equal(s.T(), float64(0), data.TotalRevenue)
		assert.Empty(s.T(), data.Bookings)
	})

	s.Run("Should sum revenue over all paid bookings", func() {
		hotel := models.Hotel{Name: "Dash Inn", Slug: "dash-inn", OwnerID: owner.ID}
		assert.Nil(s.T(), s.DB.Create(&hotel).Error)
		room := models.Room{HotelID: hotel.ID, RoomType: "Single", PricePerNight: 50, IsAvailable: true}
		assert.Nil(s.T(), s.DB.Create(&room).Error)

		paidAt := time.Now()
		for i := 0; i < 12; i++ {
			booking := models.Booking{
				UserID:       s.User.ID,
				RoomID:       room.ID,
				HotelID:      hotel.ID,
				CheckInDate:  date(2025, 10, 1+i),
				CheckOutDate: date(2025, 10, 2+i),
				TotalPrice:   50,
				Status:       string(types.BOOKING_CONFIRMED),
				IsPaid:       i%2 == 0,
			}
			if booking.IsPaid {
				booking.PaymentDate = &paidAt
				booking.PaymentMethod = types.PAYMENT_METHOD_STRIPE
			}
			assert.Nil(s.T(), s.DB.Create(&booking).Error)
		}

		data, err := OwnerDashboard(owner.ID)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), int64(12), data.TotalBookings)
		assert.Equal(s.T(), float64(300), data.TotalRevenue)
		assert.Len(s.T(), data.Bookings, 10)
	})
}

func (s *BookingsSuite) TestLastJSONLine() {
	out := "Loading model...\nprocessing\n{\"success\": true, \"recommendations\": []}\n"
	result, err := lastJSONLine(out)
	assert.Nil(s.T(), err)
	assert.Contains(s.T(), string(result), "\"success\"")

	_, err = lastJSONLine("no json here\njust logs\n")
	assert.NotNil(s.T(), err)

	out = "{\"progress\": 50}\n{\"success\": false, \"error\": \"no data\"}\nbye\n"
	result, err = lastJSONLine(out)
	assert.Nil(s.T(), err)
	assert.Contains(s.T(), string(result), "no data")
}

func (s *BookingsSuite) TestRecommendationDefaults() {
	prefs := withRecommendationDefaults(&types.RecommendationRequestBody{})
	assert.Equal(s.T(), 100, prefs.Budget)
	assert.Equal(s.T(), 2, prefs.Adults)
	assert.Equal(s.T(), "leisure", prefs.TripType)
	assert.Equal(s.T(), int(time.Now().Month()), prefs.ArrivalMonth)

	prefs = withRecommendationDefaults(&types.RecommendationRequestBody{Budget: 500, ArrivalMonth: 7})
	assert.Equal(s.T(), 500, prefs.Budget)
	assert.Equal(s.T(), 7, prefs.ArrivalMonth)
}

// RetrieveCheckoutSessionStub fabricates a session response carrying the
// booking id the way the issuer writes it into metadata.
func RetrieveCheckoutSessionStub(sessionID string, bookingID uint, status stripe.CheckoutSessionPaymentStatus) func(context.Context, string) (*stripe.CheckoutSession, error) {
	return func(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
		return &stripe.CheckoutSession{
			ID:            id,
			PaymentStatus: status,
			Metadata:      map[string]string{"bookingId": fmt.Sprint(bookingID)},
		}, nil
	}
}

func TestBookingsSuite(t *testing.T) {
	suite.Run(t, new(BookingsSuite))
}
