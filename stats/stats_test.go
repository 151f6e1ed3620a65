package stats

import (
	"testing"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"

	"github.com/stretchr/testify/assert"
)

func TestRevenueFrom(t *testing.T) {
	buckets := []statusBucket{
		{Status: models.BookingStatusPending, Count: 4, Revenue: 90000},
		{Status: models.BookingStatusConfirmed, Count: 2, Revenue: 60000},
		{Status: models.BookingStatusCompleted, Count: 1, Revenue: 45000},
		{Status: models.BookingStatusCancelled, Count: 3, Revenue: 120000},
	}
	// pending and cancelled money never counts
	assert.Equal(t, 105000.0, revenueFrom(buckets))
}

func TestRevenueFromEmpty(t *testing.T) {
	assert.Equal(t, 0.0, revenueFrom(nil))
	assert.Equal(t, 0.0, revenueFrom([]statusBucket{}))
}
