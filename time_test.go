package particles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := NewTime(start)
	assert.Equal(t, time.Duration(0), tm.Dt)

	tm.Advance(start.Add(250 * time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, tm.Dt)
	assert.Equal(t, float32(0.25), tm.Seconds())

	// Clock going backwards
	tm.Advance(start)
	assert.Equal(t, time.Duration(0), tm.Dt)
	assert.Equal(t, start, tm.Time)
}
