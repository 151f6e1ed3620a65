package bookings

import (
	"strings"
	"testing"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func sampleTour() models.Tour {
	return models.Tour{
		TourID:    "tour123",
		Title:     "Sundarbans Boat Safari",
		Duration:  3,
		Price:     15000,
		GroupSize: models.GroupSize{Min: 2, Max: 12},
		Status:    models.TourStatusActive,
	}
}

func sampleInput() BookingInput {
	return BookingInput{
		CustomerName:   "Rahim Uddin",
		CustomerPhone:  "01712345678",
		TourID:         "tour123",
		NumberOfPeople: 3,
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	return ae.Field
}

func TestBuildBooking(t *testing.T) {
	b, err := buildBooking(sampleInput(), sampleTour(), testNow)
	require.NoError(t, err)

	assert.Equal(t, "tour123", b.TourID)
	assert.Equal(t, "Sundarbans Boat Safari", b.TourTitle)
	assert.Equal(t, "Rahim Uddin", b.CustomerName)
	assert.Equal(t, 3, b.NumberOfPeople)
	assert.Equal(t, 45000.0, b.TotalPrice) // 15000 x 3, frozen here
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.PaymentStatusPending, b.PaymentStatus)
	assert.NotEmpty(t, b.BookingID)
	assert.NotEmpty(t, b.VoucherCode)
	assert.Nil(t, b.StartDate)
	assert.Nil(t, b.EndDate)
}

func TestBuildBookingDerivesEndDate(t *testing.T) {
	in := sampleInput()
	in.StartDate = "2026-04-01"

	b, err := buildBooking(in, sampleTour(), testNow)
	require.NoError(t, err)
	require.NotNil(t, b.StartDate)
	require.NotNil(t, b.EndDate)
	// 3-day tour: start day counts, so the end lands 2 days later.
	assert.Equal(t, "2026-04-01", b.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-04-03", b.EndDate.Format("2006-01-02"))
}

func TestBuildBookingAcceptsToday(t *testing.T) {
	in := sampleInput()
	in.StartDate = testNow.Format("2006-01-02")
	_, err := buildBooking(in, sampleTour(), testNow)
	assert.NoError(t, err)
}

func TestBuildBookingAcceptsTodayAcrossZones(t *testing.T) {
	// The date-only comparison has to hold wherever the clock runs: a
	// start date of today is never "in the past", even when local midnight
	// sits on the other side of UTC midnight.
	zones := []*time.Location{
		time.FixedZone("UTC-5", -5*60*60),
		time.FixedZone("UTC+6", 6*60*60),
		time.UTC,
	}
	for _, loc := range zones {
		now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		in := sampleInput()
		in.StartDate = "2026-03-10"

		b, err := buildBooking(in, sampleTour(), now)
		require.NoError(t, err, loc)
		assert.Equal(t, "2026-03-10", b.StartDate.Format("2006-01-02"), loc)
	}
}

func TestBuildBookingRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BookingInput)
		field  string
	}{
		{"missing name", func(in *BookingInput) { in.CustomerName = " " }, "customer_name"},
		{"name too long", func(in *BookingInput) { in.CustomerName = strings.Repeat("x", 101) }, "customer_name"},
		{"missing phone", func(in *BookingInput) { in.CustomerPhone = "" }, "customer_phone"},
		{"bad phone", func(in *BookingInput) { in.CustomerPhone = "123" }, "customer_phone"},
		{"missing tour", func(in *BookingInput) { in.TourID = "" }, "tourid"},
		{"zero people", func(in *BookingInput) { in.NumberOfPeople = 0 }, "number_of_people"},
		{"too many people", func(in *BookingInput) { in.NumberOfPeople = 51 }, "number_of_people"},
		{"below tour minimum", func(in *BookingInput) { in.NumberOfPeople = 1 }, "number_of_people"},
		{"above tour maximum", func(in *BookingInput) { in.NumberOfPeople = 13 }, "number_of_people"},
		{"bad email", func(in *BookingInput) { in.CustomerEmail = "not-an-email" }, "customer_email"},
		{"requests too long", func(in *BookingInput) { in.SpecialRequests = strings.Repeat("x", 501) }, "special_requests"},
		{"malformed date", func(in *BookingInput) { in.StartDate = "01/04/2026" }, "start_date"},
		{"past date", func(in *BookingInput) { in.StartDate = "2026-03-09" }, "start_date"},
		{"unknown status", func(in *BookingInput) { in.Status = "waitlisted" }, "status"},
		{"unknown payment status", func(in *BookingInput) { in.PaymentStatus = "partial" }, "payment_status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput()
			tt.mutate(&in)
			_, err := buildBooking(in, sampleTour(), testNow)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestBuildBookingFallbackBounds(t *testing.T) {
	tour := sampleTour()
	tour.GroupSize = models.GroupSize{} // no bounds on the tour itself

	in := sampleInput()
	in.NumberOfPeople = 50
	_, err := buildBooking(in, tour, testNow)
	assert.NoError(t, err)

	in.NumberOfPeople = 51
	_, err = buildBooking(in, tour, testNow)
	require.Error(t, err)
	assert.Equal(t, "number_of_people", fieldOf(t, err))
}

func TestBuildBookingNoCapacityReservation(t *testing.T) {
	// Each request is validated against the tour's bounds in isolation.
	// There is no oversell protection: two bookings at the group maximum
	// both pass even though together they exceed it.
	in := sampleInput()
	in.NumberOfPeople = 12

	first, err := buildBooking(in, sampleTour(), testNow)
	require.NoError(t, err)
	second, err := buildBooking(in, sampleTour(), testNow)
	require.NoError(t, err)
	assert.NotEqual(t, first.BookingID, second.BookingID)
}

func TestBuildBookingStatusOverrides(t *testing.T) {
	in := sampleInput()
	in.Status = models.BookingStatusConfirmed
	in.PaymentStatus = models.PaymentStatusPaid

	b, err := buildBooking(in, sampleTour(), testNow)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, models.PaymentStatusPaid, b.PaymentStatus)
}

func TestBuildPatch(t *testing.T) {
	status := models.BookingStatusCancelled
	name := "  Karim Mia  "
	set, err := buildPatch(BookingUpdate{Status: &status, CustomerName: &name}, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCancelled, set["status"])
	assert.Equal(t, "Karim Mia", set["customer_name"])
	assert.Equal(t, testNow, set["updated_at"])
	assert.NotContains(t, set, "total_price")
	assert.NotContains(t, set, "tour_title")
}

func TestBuildPatchFreeTransitions(t *testing.T) {
	// Any status may follow any other: completed back to pending is legal.
	for _, s := range models.BookingStatuses {
		status := s
		_, err := buildPatch(BookingUpdate{Status: &status}, testNow)
		assert.NoError(t, err, s)
	}
}

func TestBuildPatchRejects(t *testing.T) {
	bad := "waitlisted"
	_, err := buildPatch(BookingUpdate{Status: &bad}, testNow)
	require.Error(t, err)
	assert.Equal(t, "status", fieldOf(t, err))

	phone := "123"
	_, err = buildPatch(BookingUpdate{CustomerPhone: &phone}, testNow)
	require.Error(t, err)
	assert.Equal(t, "customer_phone", fieldOf(t, err))

	empty := " "
	_, err = buildPatch(BookingUpdate{CustomerName: &empty}, testNow)
	require.Error(t, err)
	assert.Equal(t, "customer_name", fieldOf(t, err))
}

func TestGroupBounds(t *testing.T) {
	min, max := groupBounds(models.Tour{GroupSize: models.GroupSize{Min: 4, Max: 20}})
	assert.Equal(t, 4, min)
	assert.Equal(t, 20, max)

	min, max = groupBounds(models.Tour{})
	assert.Equal(t, 1, min)
	assert.Equal(t, 50, max)
}
