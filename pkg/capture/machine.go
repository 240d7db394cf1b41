package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alde/bitcam/pkg/pipeline"
)

// State is a screen of the capture/edit flow
type State int

const (
	// StateCapture waits for a photo to be taken
	StateCapture State = iota
	// StateEdit adjusts a captured photo
	StateEdit
)

func (s State) String() string {
	switch s {
	case StateCapture:
		return "capture"
	case StateEdit:
		return "edit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrNotEditing is returned when an edit operation is attempted without a
// captured photo
var ErrNotEditing = errors.New("no photo captured")

// Machine drives the two-screen flow: capture a photo, then edit it. Going
// back discards the photo and all parameters; the next photo starts fresh.
type Machine struct {
	mu      sync.Mutex
	state   State
	session *pipeline.Session
}

// NewMachine starts in StateCapture
func NewMachine() *Machine {
	return &Machine{state: StateCapture}
}

// State returns the current screen
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Capture grabs a frame from the device and enters StateEdit with a new
// session. On failure the machine stays in StateCapture.
func (m *Machine) Capture(ctx context.Context, open Opener) (*pipeline.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateCapture {
		return nil, fmt.Errorf("cannot capture in %s state", m.state)
	}

	src, err := Grab(ctx, open)
	if err != nil {
		return nil, err
	}
	session, err := pipeline.NewSession(src)
	if err != nil {
		return nil, fmt.Errorf("failed to start editing: %w", err)
	}

	m.session = session
	m.state = StateEdit
	return session, nil
}

// Session returns the active editing session
func (m *Machine) Session() (*pipeline.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEdit || m.session == nil {
		return nil, ErrNotEditing
	}
	return m.session, nil
}

// Back returns to StateCapture and drops the captured photo
func (m *Machine) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil
	m.state = StateCapture
}

// Retake goes back and captures again in one step. If the new capture fails
// the machine is left in StateCapture.
func (m *Machine) Retake(ctx context.Context, open Opener) (*pipeline.Session, error) {
	m.Back()
	return m.Capture(ctx, open)
}
