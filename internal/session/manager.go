package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrBusy is returned by Begin while another action is in flight.
var ErrBusy = errors.New("session: another action is in progress")

// Manager owns the session state with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    State
	busy     bool
	filePath string
	log      zerolog.Logger
}

// NewManager creates a Manager, restoring holdings from filePath when set.
func NewManager(filePath string, log zerolog.Logger) (*Manager, error) {
	m := &Manager{filePath: filePath, log: log.With().Str("component", "session").Logger()}
	if filePath == "" {
		return m, nil
	}
	snap, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	m.state = Reduce(m.state, HoldingsPriced{Holdings: snap.Holdings})
	return m, nil
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Dispatch applies action and persists the holdings when they changed.
func (m *Manager) Dispatch(action Action) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = Reduce(m.state, action)
	if _, ok := action.(HoldingsPriced); ok {
		m.save()
	}
	return m.state.Clone()
}

// Begin reserves the session for one action. The returned func releases it.
func (m *Manager) Begin() (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return nil, ErrBusy
	}
	m.busy = true
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.busy = false
			m.mu.Unlock()
		})
	}, nil
}

func (m *Manager) save() {
	if m.filePath == "" {
		return
	}
	if err := SaveState(m.filePath, &Snapshot{Holdings: m.state.Holdings}); err != nil {
		m.log.Error().Err(err).Str("path", m.filePath).Msg("failed to save session state")
	}
}
