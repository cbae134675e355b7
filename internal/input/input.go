package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer control, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionAscend
	ActionDescend
	ActionBoost
	ActionPause
	ActionToggleWireframe
	ActionWindowGrow
	ActionWindowShrink
	ActionDumpChunk
	ActionCount // sentinel for array sizing
)

// Manager maps physical keys to actions and tracks per-frame edges.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	current      [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager creates a Manager with the default fly-camera bindings
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionStrafeLeft)
	m.BindKey(glfw.KeyLeft, ActionStrafeLeft)
	m.BindKey(glfw.KeyD, ActionStrafeRight)
	m.BindKey(glfw.KeyRight, ActionStrafeRight)
	m.BindKey(glfw.KeySpace, ActionAscend)
	m.BindKey(glfw.KeyLeftShift, ActionDescend)
	m.BindKey(glfw.KeyLeftControl, ActionBoost)
	m.BindKey(glfw.KeyEscape, ActionPause)
	m.BindKey(glfw.KeyF, ActionToggleWireframe)
	m.BindKey(glfw.KeyEqual, ActionWindowGrow)
	m.BindKey(glfw.KeyKPAdd, ActionWindowGrow)
	m.BindKey(glfw.KeyMinus, ActionWindowShrink)
	m.BindKey(glfw.KeyKPSubtract, ActionWindowShrink)
	m.BindKey(glfw.KeyI, ActionDumpChunk)

	return m
}

// BindKey binds a physical key to an action. A key may drive several
// actions and an action may have several keys.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (m *Manager) UnbindKey(key glfw.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keyToActions, key)
}

// HandleKeyEvent records a key transition. Repeats count as held.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions, ok := m.keyToActions[key]
	if !ok {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if pressed && !m.current[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.current[act] {
			m.justReleased[act] = true
		}
		m.current[act] = pressed
	}
}

// Attach installs the manager as the window's key callback
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears edge flags; call it once at the end of every frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	clear(m.justReleased[:])
}

// IsActive reports whether the action is held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current[action]
}

// JustPressed reports whether the action went down this frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased reports whether the action went up this frame
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}

// Axis folds a negative/positive action pair into -1, 0 or 1.
func (m *Manager) Axis(negative, positive Action) float32 {
	var v float32
	if m.IsActive(positive) {
		v++
	}
	if m.IsActive(negative) {
		v--
	}
	return v
}
