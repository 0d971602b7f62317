package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		return nil
	}
	return errors.New("unsupported column type for JSONB")
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		return nil
	}
	return errors.New("unsupported column type for JSONBArray")
}

const (
	ROLE_USER  string = "user"
	ROLE_HOST  string = "host"
	ROLE_ADMIN string = "admin"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

const (
	PAYMENT_METHOD_DEFAULT string = "Pay At Hotel"
	PAYMENT_METHOD_STRIPE  string = "Stripe"
)

type RegisterUserRequestBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterFaceRequestBody struct {
	FaceDescriptor []float64 `json:"faceDescriptor" binding:"required,min=1"`
}

type FaceLoginRequestBody struct {
	Email          string    `json:"email" binding:"required,email"`
	FaceDescriptor []float64 `json:"faceDescriptor" binding:"required,min=1"`
}

type UpdateProfileRequestBody struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty" binding:"omitempty,bookingdate"`
	Preferences JSONB  `json:"preferences,omitempty"`
}

type RecentCitiesRequestBody struct {
	City string `json:"city" binding:"required"`
}

type RegisterHotelRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	City    string `json:"city" binding:"required"`
}

type CreateRoomRequestBody struct {
	HotelID       uint     `json:"hotelId,omitempty"`
	RoomType      string   `json:"roomType" binding:"required"`
	PricePerNight float64  `json:"pricePerNight" binding:"required,gt=0"`
	Amenities     []string `json:"amenities,omitempty"`
	Images        []string `json:"images,omitempty" binding:"omitempty,max=4,dive,url"`
}

type UpdateRoomRequestBody struct {
	RoomType      string   `json:"roomType,omitempty"`
	PricePerNight float64  `json:"pricePerNight,omitempty" binding:"omitempty,gt=0"`
	Amenities     []string `json:"amenities,omitempty"`
	Images        []string `json:"images,omitempty" binding:"omitempty,max=4,dive,url"`
}

type ToggleRoomRequestBody struct {
	RoomID uint `json:"roomId" binding:"required"`
}

type CheckAvailabilityRequestBody struct {
	Room         uint   `json:"room" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required,bookingdate"`
	CheckOutDate string `json:"checkOutDate" binding:"required,bookingdate,gtdate=CheckInDate"`
}

type CreateBookingRequestBody struct {
	Room         uint   `json:"room" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required,bookingdate"`
	CheckOutDate string `json:"checkOutDate" binding:"required,bookingdate,gtdate=CheckInDate"`
	Guests       uint   `json:"guests" binding:"required,min=1"`
}

type StripePaymentRequestBody struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

type CheckPaymentBySessionRequestBody struct {
	SessionID string `json:"sessionId" binding:"required"`
}

type ForceCheckPaymentRequestBody struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

type RecommendationRequestBody struct {
	Budget        int    `json:"budget,omitempty"`
	Adults        int    `json:"adults,omitempty"`
	Children      int    `json:"children,omitempty"`
	TripType      string `json:"trip_type,omitempty"`
	WeekendNights int    `json:"weekend_nights,omitempty"`
	WeekNights    int    `json:"week_nights,omitempty"`
	ArrivalMonth  int    `json:"arrival_month,omitempty" binding:"omitempty,min=1,max=12"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}
