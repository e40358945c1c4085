package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSStore implements the Store interface with one JSON file per report:
// <baseDir>/reports/<id>.json
//
// Writes go to a temp file in the same directory followed by a rename, so
// readers never see a partial report and no locks are needed.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSStore{baseDir: baseDir}, nil
}

func (fs *FSStore) reportsDir() string {
	return filepath.Join(fs.baseDir, "reports")
}

func (fs *FSStore) reportPath(id string) string {
	return filepath.Join(fs.reportsDir(), id+".json")
}

// Save validates and atomically writes a report.
func (fs *FSStore) Save(r *Report) error {
	if r == nil {
		return fmt.Errorf("report cannot be nil")
	}
	if err := r.Validate(); err != nil {
		return err
	}

	dir := fs.reportsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	tmp, err := os.CreateTemp(dir, r.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp report file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp report file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp report file: %w", err)
	}

	finalPath := fs.reportPath(r.ID)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename report file: %w", err)
	}

	slog.Debug("Report saved", "id", r.ID, "path", finalPath)
	return nil
}

// Load retrieves the report with the given ID.
func (fs *FSStore) Load(id string) (*Report, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	path := fs.reportPath(id)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}

	slog.Debug("Report loaded", "id", id, "path", path)
	return &r, nil
}

// List returns metadata for all stored reports, newest first.
func (fs *FSStore) List() ([]Info, error) {
	entries, err := os.ReadDir(fs.reportsDir())
	if os.IsNotExist(err) {
		return []Info{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	infos := []Info{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		id := strings.TrimSuffix(name, ".json")
		r, err := fs.Load(id)
		if err != nil {
			slog.Warn("Failed to load report for listing", "id", id, "error", err)
			continue
		}

		infos = append(infos, r.ToInfo())
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})

	slog.Debug("Listed reports", "count", len(infos))
	return infos, nil
}

// Delete removes the report with the given ID.
func (fs *FSStore) Delete(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	path := fs.reportPath(id)
	if err := os.Remove(path); os.IsNotExist(err) {
		return &NotFoundError{ID: id}
	} else if err != nil {
		return fmt.Errorf("failed to remove report file: %w", err)
	}

	slog.Debug("Report deleted", "id", id, "path", path)
	return nil
}
