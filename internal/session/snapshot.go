package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"PortfolioAnalyzer/internal/model"
)

// Snapshot is the persisted part of the session.
type Snapshot struct {
	Holdings  []model.Holding `json:"holdings"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LoadState reads the snapshot from a JSON file. Returns an empty snapshot if the file doesn't exist.
func LoadState(filePath string) (*Snapshot, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveState writes the snapshot to a JSON file.
func SaveState(filePath string, snap *Snapshot) error {
	snap.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
