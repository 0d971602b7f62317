package common

import (
	"fmt"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"log"
	"os"
)

// SendMail is swappable so tests can count deliveries instead of dialing SMTP.
var SendMail = lib.SendMail

// sendBookingConfirmation is best effort: a failed send is logged and never
// rolls back the booking.
func sendBookingConfirmation(booking *models.Booking, room *models.Room) {
	var user models.User
	if err := db.GetDb().
		Model(&models.User{}).
		Where("id = ?", booking.UserID).
		First(&user).
		Error; err != nil {
		log.Printf("Could not load user %d for booking email: %s\n", booking.UserID, err.Error())
		return
	}
	hotelName := ""
	hotelAddress := ""
	if room.Hotel != nil {
		hotelName = room.Hotel.Name
		hotelAddress = room.Hotel.Address
	}
	body := fmt.Sprintf(`
		<h2>Your Booking Details</h2>
		<p>Dear %s,</p>
		<p>Thank you for booking! Here are your details:</p>
		<ul>
			<li><strong>Booking ID:</strong> %d</li>
			<li><strong>Hotel Name:</strong> %s</li>
			<li><strong>Location:</strong> %s</li>
			<li><strong>Check-in:</strong> %s</li>
			<li><strong>Check-out:</strong> %s</li>
			<li><strong>Total Amount:</strong> %.2f</li>
		</ul>
		<p>We look forward to welcoming you!</p>`,
		user.Username,
		booking.ID,
		hotelName,
		hotelAddress,
		booking.CheckInDate.Format(config.DATE_PARSE_FORMAT),
		booking.CheckOutDate.Format(config.DATE_PARSE_FORMAT),
		booking.TotalPrice,
	)
	if err := SendMail(&lib.SendMailInput{
		From:     os.Getenv("SENDER_EMAIL"),
		FromName: "Hotel Bookings",
		To:       []string{user.Email},
		Subject:  "Hotel Booking Details",
		Body:     body,
		Html:     true,
	}); err != nil {
		log.Printf("Error sending booking confirmation for booking %d: %s\n", booking.ID, err.Error())
	}
}

func sendPaymentConfirmation(bookingID uint) {
	var booking models.Booking
	if err := db.GetDb().
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Preload("User").
		Preload("Room").
		Preload("Hotel").
		First(&booking).
		Error; err != nil {
		log.Printf("Could not load booking %d for payment email: %s\n", bookingID, err.Error())
		return
	}
	if booking.User == nil {
		return
	}
	hotelName := ""
	roomType := ""
	if booking.Hotel != nil {
		hotelName = booking.Hotel.Name
	}
	if booking.Room != nil {
		roomType = booking.Room.RoomType
	}
	body := fmt.Sprintf(`
		<h2>Payment Confirmed!</h2>
		<p>Dear %s,</p>
		<p>Your payment has been confirmed.</p>
		<h3>Booking details:</h3>
		<ul>
			<li><strong>Booking ID:</strong> %d</li>
			<li><strong>Hotel:</strong> %s</li>
			<li><strong>Room:</strong> %s</li>
			<li><strong>Check-in:</strong> %s</li>
			<li><strong>Check-out:</strong> %s</li>
			<li><strong>Amount paid:</strong> %.2f</li>
		</ul>
		<p>Thank you for your trust!</p>`,
		booking.User.Username,
		booking.ID,
		hotelName,
		roomType,
		booking.CheckInDate.Format(config.DATE_PARSE_FORMAT),
		booking.CheckOutDate.Format(config.DATE_PARSE_FORMAT),
		booking.TotalPrice,
	)
	if err := SendMail(&lib.SendMailInput{
		From:     os.Getenv("SENDER_EMAIL"),
		FromName: "Hotel Bookings",
		To:       []string{booking.User.Email},
		Subject:  "Payment Confirmed - Booking Details",
		Body:     body,
		Html:     true,
	}); err != nil {
		log.Printf("Error sending payment confirmation for booking %d: %s\n", bookingID, err.Error())
	}
}
