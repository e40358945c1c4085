package report

// Store defines the interface for benchmark report persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return ErrNotFound if a report doesn't exist (for Load/Delete)
//   - Return a *ValidationError for malformed reports or IDs
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// Save atomically writes a report, replacing any report with the same ID.
	Save(r *Report) error

	// Load retrieves the report with the given ID.
	Load(id string) (*Report, error)

	// List returns metadata for all stored reports, newest first.
	// Unreadable reports are skipped.
	List() ([]Info, error)

	// Delete removes the report with the given ID.
	Delete(id string) error
}

// ErrNotFound is returned when a requested report does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing report.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return "report not found: " + e.ID
	}
	return "report not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
