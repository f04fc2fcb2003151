package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const maxRecent = 10

// FileState stores the state of a single alignment file
type FileState struct {
	SelectedRow    int `json:"selected_row"`
	SelectedColumn int `json:"selected_column"`
	ScrollRow      int `json:"scroll_row"`
}

// Session stores the complete editor session state
type Session struct {
	Files      map[string]FileState `json:"files"`
	ActiveFile string               `json:"active_file,omitempty"`
	Recent     []string             `json:"recent,omitempty"`
	LastSaved  time.Time            `json:"last_saved"`
}

// Manager handles session persistence
type Manager struct {
	mu       sync.RWMutex
	session  Session
	path     string
	dirty    bool
	stopChan chan struct{}
}

// NewManager creates a new session manager. With autosave enabled the
// session is flushed to disk every 15 seconds.
func NewManager(autosave bool) (*Manager, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		session: Session{
			Files: make(map[string]FileState),
		},
		path:     path,
		stopChan: make(chan struct{}),
	}

	// Load existing session
	m.load()

	if autosave {
		go m.autosaveLoop()
	}

	return m, nil
}

func sessionPath() (string, error) {
	stateDir := os.Getenv("TMXALIGN_STATE_HOME")
	if stateDir == "" {
		// XDG state directory
		stateDir = os.Getenv("XDG_STATE_HOME")
		if stateDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			stateDir = filepath.Join(home, ".local", "state")
		}
		stateDir = filepath.Join(stateDir, "tmxalign")
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return // No existing session, start fresh
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return
	}
	if session.Files == nil {
		session.Files = make(map[string]FileState)
	}
	m.session = session
}

// Save persists the session to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}

	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return err
	}

	m.dirty = false
	return nil
}

// ForceSave saves even if not dirty
func (m *Manager) ForceSave() error {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
	return m.Save()
}

// GetFileState returns the saved state for a file
func (m *Manager) GetFileState(absPath string) (FileState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.session.Files[absPath]
	return state, ok
}

// SetFileState updates the state for a file
func (m *Manager) SetFileState(absPath string, state FileState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Files[absPath] = state
	m.session.ActiveFile = absPath
	m.recordRecent(absPath)
	m.dirty = true
}

// SetActiveFile sets the currently open file
func (m *Manager) SetActiveFile(absPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.ActiveFile = absPath
	m.recordRecent(absPath)
	m.dirty = true
}

// GetActiveFile returns the last active file
func (m *Manager) GetActiveFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ActiveFile
}

// Recent returns the most recently opened files, newest first
func (m *Manager) Recent() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.session.Recent))
	copy(out, m.session.Recent)
	return out
}

// recordRecent moves absPath to the front of the recent list.
// Callers must hold mu.
func (m *Manager) recordRecent(absPath string) {
	recent := make([]string, 0, maxRecent)
	recent = append(recent, absPath)
	for _, p := range m.session.Recent {
		if p == absPath {
			continue
		}
		recent = append(recent, p)
		if len(recent) == maxRecent {
			break
		}
	}
	m.session.Recent = recent
}

func (m *Manager) autosaveLoop() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = m.Save()
		case <-m.stopChan:
			return
		}
	}
}

// Stop stops the autosave loop and saves final state
func (m *Manager) Stop() {
	close(m.stopChan)
	_ = m.ForceSave()
}
