package main

import (
	"time"

	"mini-terrain/internal/config"
)

// pausedFPS caps the loop while the viewer is paused
const pausedFPS = 30

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// frameBudget returns the target frame time, or 0 when uncapped.
func frameBudget(paused bool) time.Duration {
	limit := config.GetFPSLimit()
	if paused {
		limit = pausedFPS
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Wait blocks until the next frame is due. It sleeps most of the gap and
// spins the last stretch, which holds high caps much more precisely.
func (f *FPSLimiter) Wait(paused bool) {
	target := frameBudget(paused)
	if target == 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// Resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
