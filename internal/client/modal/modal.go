// Package modal implements the single-slot modal dialog state: at most one
// modal is open, opening another replaces it, and every dismissal path ends
// in Close.
package modal

import (
	"sync"
)

// Name identifies a modal. The empty Name means none is active.
type Name string

const (
	None    Name = ""
	SignIn  Name = "signin"
	SignUp  Name = "signup"
	Success Name = "success"
)

// Trigger is the user gesture that dismissed a modal.
type Trigger int

const (
	CloseButton Trigger = iota
	Overlay
	Escape
)

func (t Trigger) String() string {
	switch t {
	case CloseButton:
		return "close-button"
	case Overlay:
		return "overlay"
	case Escape:
		return "escape"
	default:
		return "unknown"
	}
}

// State is a snapshot of the machine. Active is None whenever IsOpen is false.
type State struct {
	Active Name
	IsOpen bool
}

// Resetter is implemented by forms owned by a modal.
type Resetter interface {
	Reset()
}

type Machine struct {
	mu       sync.Mutex
	state    State
	bound    map[Name][]Resetter
	onChange func(State)
}

func New() *Machine {
	return &Machine{bound: map[Name][]Resetter{}}
}

// Bind registers r to be reset every time name opens.
func (m *Machine) Bind(name Name, r Resetter) {
	m.mu.Lock()
	m.bound[name] = append(m.bound[name], r)
	m.mu.Unlock()
}

// OnChange installs a callback invoked after every transition.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Open makes name the active modal, replacing any other, and resets the
// forms bound to it. Opening None closes.
func (m *Machine) Open(name Name) {
	if name == None {
		m.Close()
		return
	}
	m.mu.Lock()
	m.state = State{Active: name, IsOpen: true}
	resetters := append([]Resetter(nil), m.bound[name]...)
	st, fn := m.state, m.onChange
	m.mu.Unlock()

	for _, r := range resetters {
		r.Reset()
	}
	if fn != nil {
		fn(st)
	}
}

// Switch follows the in-modal link to another modal ("Sign up" inside
// sign-in and vice versa).
func (m *Machine) Switch(name Name) { m.Open(name) }

// Close clears the active modal. Closing when nothing is open is a no-op
// apart from the change notification.
func (m *Machine) Close() {
	m.mu.Lock()
	m.state = State{}
	st, fn := m.state, m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

// Dismiss routes a close button click, overlay click or Escape press to Close.
// It does nothing when no modal is open.
func (m *Machine) Dismiss(_ Trigger) {
	if !m.State().IsOpen {
		return
	}
	m.Close()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsOpen reports whether name is the open modal.
func (m *Machine) IsOpen(name Name) bool {
	st := m.State()
	return st.IsOpen && st.Active == name
}
