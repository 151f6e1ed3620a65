package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusPaused    = "paused"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// BookingStatuses lists every legal value of Booking.Status. Transitions are
// deliberately unrestricted: any admin update may set any member.
var BookingStatuses = []string{
	BookingStatusPending,
	BookingStatusPaused,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusRefunded,
}

type Booking struct {
	BookingID    string `json:"bookingid" bson:"bookingid"`
	TourID       string `json:"tourid" bson:"tourid"`
	// TourTitle is a point-in-time snapshot taken when the booking is
	// created. It is not kept in sync with later tour edits.
	TourTitle       string     `json:"tour_title" bson:"tour_title"`
	CustomerName    string     `json:"customer_name" bson:"customer_name"`
	CustomerEmail   string     `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	CustomerPhone   string     `json:"customer_phone" bson:"customer_phone"`
	NumberOfPeople  int        `json:"number_of_people" bson:"number_of_people"`
	StartDate       *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	TotalPrice      float64    `json:"total_price" bson:"total_price"` // frozen at creation
	Status          string     `json:"status" bson:"status"`
	PaymentStatus   string     `json:"payment_status" bson:"payment_status"`
	SpecialRequests string     `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	VoucherCode     string     `json:"voucher_code" bson:"voucher_code"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}
