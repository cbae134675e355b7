package config

import "sync"

// RenderSettings holds runtime render configuration
type RenderSettings struct {
	mu         sync.RWMutex
	windowSize int // streaming window edge, in chunks
	fpsLimit   int
	wireframe  bool
}

var globalRenderSettings = &RenderSettings{
	windowSize: 5,
	fpsLimit:   144,
}

// GetWindowSize returns the current streaming window edge in chunks
func GetWindowSize() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.windowSize
}

// SetWindowSize sets the streaming window edge in chunks
func SetWindowSize(size int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if size < 1 {
		size = 1
	}
	if size > 31 {
		size = 31
	}

	globalRenderSettings.windowSize = size
}

// GetFPSLimit returns the frame cap; 0 means uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}

// GetWireframe reports whether terrain is drawn as lines
func GetWireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframe flips the wireframe flag and returns the new value
func ToggleWireframe() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}
