package main

import (
	"testing"
	"time"

	"mini-terrain/internal/config"

	"github.com/stretchr/testify/assert"
)

// TestFrameBudget derives the frame time from the FPS cap.
func TestFrameBudget(t *testing.T) {
	prev := config.GetFPSLimit()
	t.Cleanup(func() { config.SetFPSLimit(prev) })

	config.SetFPSLimit(100)
	assert.Equal(t, 10*time.Millisecond, frameBudget(false))
	assert.Equal(t, time.Second/pausedFPS, frameBudget(true))

	config.SetFPSLimit(0)
	assert.Zero(t, frameBudget(false))
}

// TestWaitPacesFrames holds the loop to the cap.
func TestWaitPacesFrames(t *testing.T) {
	prev := config.GetFPSLimit()
	t.Cleanup(func() { config.SetFPSLimit(prev) })
	config.SetFPSLimit(200)

	f := NewFPSLimiter()
	start := time.Now()
	for range 5 {
		f.Wait(false)
	}
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

// TestWaitUncappedReturnsImmediately does not sleep without a cap.
func TestWaitUncappedReturnsImmediately(t *testing.T) {
	prev := config.GetFPSLimit()
	t.Cleanup(func() { config.SetFPSLimit(prev) })
	config.SetFPSLimit(0)

	f := NewFPSLimiter()
	start := time.Now()
	f.Wait(false)
	assert.Less(t, time.Since(start), 5*time.Millisecond)
	assert.True(t, f.next.IsZero())
}
