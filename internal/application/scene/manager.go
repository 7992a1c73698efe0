package scene

import (
	"fmt"
	"log"
)

// Manager owns the active scene and applies switches between frames.
type Manager struct {
	host    Host
	active  Scene
	pending Factory
}

// NewManager creates a manager with no active scene.
func NewManager(h Host) *Manager {
	return &Manager{host: h}
}

// Switch records f as the next scene. Nothing changes until Commit; when
// several switches are requested in one frame the last one wins.
func (m *Manager) Switch(f Factory) {
	if f == nil {
		return
	}
	m.pending = f
}

// Pending reports whether a switch is waiting for Commit.
func (m *Manager) Pending() bool {
	return m.pending != nil
}

// Active returns the current scene, nil before the first Commit.
func (m *Manager) Active() Scene {
	return m.active
}

// Commit applies the pending switch: the outgoing scene's Exit runs
// strictly before the incoming scene's Enter. Switches requested from
// inside the factory or Enter wait for the next Commit.
func (m *Manager) Commit() bool {
	if m.pending == nil {
		return false
	}
	f := m.pending
	m.pending = nil

	if m.active != nil {
		if err := safeExit(m.active); err != nil {
			log.Printf("[scene] exit %T: %v", m.active, err)
		}
	}
	next := f(m.host)
	m.active = next
	next.Enter()
	return true
}

// Shutdown exits the active scene, if any.
func (m *Manager) Shutdown() {
	m.pending = nil
	if m.active == nil {
		return
	}
	if err := safeExit(m.active); err != nil {
		log.Printf("[scene] exit %T: %v", m.active, err)
	}
}

func safeExit(s Scene) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Exit()
}
