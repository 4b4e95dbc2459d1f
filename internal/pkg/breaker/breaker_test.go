package breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/places-api/internal/pkg/breaker"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := breaker.New(3, time.Minute)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		err := b.Do(func() error { return boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, breaker.StateOpen, b.State())
	err := b.Do(func() error { return nil })
	assert.ErrorIs(t, err, breaker.ErrOpen)
}

func TestBreakerResetsOnSuccess(t *testing.T) {
	b := breaker.New(3, time.Minute)
	boom := errors.New("boom")

	_ = b.Do(func() error { return boom })
	_ = b.Do(func() error { return boom })
	_ = b.Do(func() error { return nil })
	_ = b.Do(func() error { return boom })
	_ = b.Do(func() error { return boom })

	assert.Equal(t, breaker.StateClosed, b.State())
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	b := breaker.NewWithClock(1, 30*time.Second, clock)

	_ = b.Do(func() error { return errors.New("boom") })
	assert.Equal(t, breaker.StateOpen, b.State())

	// Before the cool-down the breaker stays open.
	err := b.Do(func() error { return nil })
	assert.ErrorIs(t, err, breaker.ErrOpen)

	// After the cool-down a probe is allowed and success closes it.
	now = now.Add(31 * time.Second)
	assert.Equal(t, breaker.StateHalfOpen, b.State())
	err = b.Do(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, breaker.StateClosed, b.State())
}
