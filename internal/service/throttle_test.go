package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPThrottle(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	throttle := NewOTPThrottle(30 * time.Second)
	throttle.now = func() time.Time { return now }

	assert.True(t, throttle.Allow("600123456"), "first request")
	assert.False(t, throttle.Allow("600123456"), "immediate resend")
	assert.True(t, throttle.Allow("600999999"), "other phone")

	now = now.Add(31 * time.Second)
	assert.True(t, throttle.Allow("600123456"), "after interval")
}

func TestOTPThrottle_Release(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	throttle := NewOTPThrottle(30 * time.Second)
	throttle.now = func() time.Time { return now }

	assert.True(t, throttle.Allow("600123456"))
	throttle.Release("600123456")
	assert.True(t, throttle.Allow("600123456"), "resend after a failed send")
	assert.False(t, throttle.Allow("600123456"), "resend after a delivered code")

	var nilThrottle *OTPThrottle
	nilThrottle.Release("600123456")
}

func TestOTPThrottle_Disabled(t *testing.T) {
	throttle := NewOTPThrottle(0)

	for range 5 {
		assert.True(t, throttle.Allow("600123456"))
	}

	var nilThrottle *OTPThrottle
	assert.True(t, nilThrottle.Allow("600123456"))
}

func TestOTPThrottle_Cleanup(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	throttle := NewOTPThrottle(30 * time.Second)
	throttle.now = func() time.Time { return now }

	throttle.Allow("600111111")
	now = now.Add(20 * time.Second)
	throttle.Allow("600222222")

	now = now.Add(15 * time.Second)
	assert.Equal(t, 1, throttle.Cleanup())
	assert.Len(t, throttle.phones, 1)
	assert.Contains(t, throttle.phones, "600222222")
}
