package bookings

import (
	"strings"
	"testing"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherPayloadRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	issued := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	payload := voucherPayload("bk-1", "vc-1", issued, secret)
	assert.True(t, strings.HasPrefix(payload, "bk-1|vc-1|"))

	id, ok := VerifyVoucherPayload(payload, secret)
	require.True(t, ok)
	assert.Equal(t, "bk-1", id)
}

func TestVoucherDates(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)

	dates, ok := voucherDates(models.Booking{StartDate: &start, EndDate: &end})
	require.True(t, ok)
	assert.Equal(t, "01 Apr 2026 to 03 Apr 2026", dates)

	_, ok = voucherDates(models.Booking{})
	assert.False(t, ok)

	// a lone start date must not blow up the voucher
	_, ok = voucherDates(models.Booking{StartDate: &start})
	assert.False(t, ok)
	_, ok = voucherDates(models.Booking{EndDate: &end})
	assert.False(t, ok)
}

func TestVerifyVoucherPayloadRejectsTampering(t *testing.T) {
	secret := []byte("test-secret")
	payload := voucherPayload("bk-1", "vc-1", time.Now(), secret)

	// swap the booking id, signature no longer matches
	tampered := strings.Replace(payload, "bk-1", "bk-2", 1)
	_, ok := VerifyVoucherPayload(tampered, secret)
	assert.False(t, ok)

	// wrong secret
	_, ok = VerifyVoucherPayload(payload, []byte("other-secret"))
	assert.False(t, ok)

	// structurally broken payloads
	_, ok = VerifyVoucherPayload("", secret)
	assert.False(t, ok)
	_, ok = VerifyVoucherPayload("a|b|c", secret)
	assert.False(t, ok)
}
