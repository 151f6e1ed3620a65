package bookings

import (
	"strings"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"github.com/google/uuid"
)

const (
	maxNameLen     = 100
	maxRequestsLen = 500

	// Applied when a tour carries no group size of its own.
	fallbackMinPeople = 1
	fallbackMaxPeople = 50
)

// BookingInput is the public intake request body.
type BookingInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	TourID          string `json:"tourid"`
	NumberOfPeople  int    `json:"number_of_people"`
	StartDate       string `json:"start_date"` // YYYY-MM-DD
	SpecialRequests string `json:"special_requests"`
	// Optional overrides, used by admin-entered bookings.
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// validateRequired is the first step of the intake chain: presence checks
// only, before the tour is even resolved.
func (in BookingInput) validateRequired() error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return apperr.Validation("customer_name", "customer name is required")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return apperr.Validation("customer_phone", "customer phone is required")
	}
	if strings.TrimSpace(in.TourID) == "" {
		return apperr.Validation("tourid", "tour is required")
	}
	if in.NumberOfPeople == 0 {
		return apperr.Validation("number_of_people", "number of people is required")
	}
	return nil
}

// groupBounds returns the admissible headcount range for a tour, falling
// back to 1..50 when the tour does not carry one.
func groupBounds(tour models.Tour) (int, int) {
	min, max := tour.GroupSize.Min, tour.GroupSize.Max
	if min <= 0 {
		min = fallbackMinPeople
	}
	if max <= 0 {
		max = fallbackMaxPeople
	}
	return min, max
}

// buildBooking runs the intake validation chain against the resolved tour
// and assembles the booking to persist. now anchors the date-only
// "not in the past" check. Capacity is deliberately not reserved: two
// concurrent bookings may jointly exceed the tour's group maximum.
func buildBooking(in BookingInput, tour models.Tour, now time.Time) (models.Booking, error) {
	if err := in.validateRequired(); err != nil {
		return models.Booking{}, err
	}

	name := strings.TrimSpace(in.CustomerName)
	if len(name) > maxNameLen {
		return models.Booking{}, apperr.Validation("customer_name", "customer name must be 100 characters or less")
	}

	if !utils.IsValidBDPhone(strings.TrimSpace(in.CustomerPhone)) {
		return models.Booking{}, apperr.Validation("customer_phone", "customer phone must be a valid Bangladeshi mobile number")
	}

	if in.NumberOfPeople < fallbackMinPeople || in.NumberOfPeople > fallbackMaxPeople {
		return models.Booking{}, apperr.Validation("number_of_people", "number of people must be between 1 and 50")
	}
	min, max := groupBounds(tour)
	if in.NumberOfPeople < min || in.NumberOfPeople > max {
		return models.Booking{}, apperr.Validation("number_of_people", "number of people is outside this tour's group size")
	}

	email := strings.TrimSpace(in.CustomerEmail)
	if email != "" && !utils.IsValidEmail(email) {
		return models.Booking{}, apperr.Validation("customer_email", "customer email is not a valid address")
	}

	if len(in.SpecialRequests) > maxRequestsLen {
		return models.Booking{}, apperr.Validation("special_requests", "special requests must be 500 characters or less")
	}

	booking := models.Booking{
		BookingID:       uuid.NewString(),
		TourID:          tour.TourID,
		TourTitle:       tour.Title, // snapshot, never synced with tour edits
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		NumberOfPeople:  in.NumberOfPeople,
		TotalPrice:      tour.Price * float64(in.NumberOfPeople),
		Status:          models.BookingStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		VoucherCode:     uuid.NewString(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if in.StartDate != "" {
		// Parse in now's location so the date-only comparison below never
		// crosses a zone boundary.
		start, err := time.ParseInLocation("2006-01-02", in.StartDate, now.Location())
		if err != nil {
			return models.Booking{}, apperr.Validation("start_date", "start date must be YYYY-MM-DD")
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if start.Before(today) {
			return models.Booking{}, apperr.Validation("start_date", "start date cannot be in the past")
		}
		end := start.AddDate(0, 0, tour.Duration-1)
		booking.StartDate = &start
		booking.EndDate = &end
	}

	if in.Status != "" {
		if !contains(models.BookingStatuses, in.Status) {
			return models.Booking{}, apperr.Validation("status", "unknown booking status")
		}
		booking.Status = in.Status
	}
	if in.PaymentStatus != "" {
		if !contains(models.PaymentStatuses, in.PaymentStatus) {
			return models.Booking{}, apperr.Validation("payment_status", "unknown payment status")
		}
		booking.PaymentStatus = in.PaymentStatus
	}

	return booking, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// BookingUpdate is the admin patch body. Status transitions are free by
// design: any state may be set to any other state.
type BookingUpdate struct {
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"payment_status"`
	CustomerName    *string `json:"customer_name"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerPhone   *string `json:"customer_phone"`
	SpecialRequests *string `json:"special_requests"`
}

// buildPatch validates the supplied fields and returns the $set document.
// total_price and tour_title are not patchable; both are frozen at creation.
func buildPatch(in BookingUpdate, now time.Time) (map[string]any, error) {
	set := map[string]any{"updated_at": now}

	if in.Status != nil {
		if !contains(models.BookingStatuses, *in.Status) {
			return nil, apperr.Validation("status", "unknown booking status")
		}
		set["status"] = *in.Status
	}
	if in.PaymentStatus != nil {
		if !contains(models.PaymentStatuses, *in.PaymentStatus) {
			return nil, apperr.Validation("payment_status", "unknown payment status")
		}
		set["payment_status"] = *in.PaymentStatus
	}
	if in.CustomerName != nil {
		name := strings.TrimSpace(*in.CustomerName)
		if name == "" || len(name) > maxNameLen {
			return nil, apperr.Validation("customer_name", "customer name must be 1-100 characters")
		}
		set["customer_name"] = name
	}
	if in.CustomerEmail != nil {
		email := strings.TrimSpace(*in.CustomerEmail)
		if email != "" && !utils.IsValidEmail(email) {
			return nil, apperr.Validation("customer_email", "customer email is not a valid address")
		}
		set["customer_email"] = email
	}
	if in.CustomerPhone != nil {
		phone := strings.TrimSpace(*in.CustomerPhone)
		if !utils.IsValidBDPhone(phone) {
			return nil, apperr.Validation("customer_phone", "customer phone must be a valid Bangladeshi mobile number")
		}
		set["customer_phone"] = phone
	}
	if in.SpecialRequests != nil {
		if len(*in.SpecialRequests) > maxRequestsLen {
			return nil, apperr.Validation("special_requests", "special requests must be 500 characters or less")
		}
		set["special_requests"] = strings.TrimSpace(*in.SpecialRequests)
	}
	return set, nil
}
