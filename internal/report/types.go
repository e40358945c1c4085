package report

import (
	"time"

	"github.com/google/uuid"
)

// Result is the measured throughput of one kernel on one layout.
type Result struct {
	// Kernel is the operation measured: "rgba", "rgb" or "ycbcr"
	Kernel string `json:"kernel"`

	// Backend is the kernel variant (scalar, narrow, wide)
	Backend string `json:"backend"`

	// Bytes is the input size of one operation
	Bytes int64 `json:"bytes"`

	NsPerOp  float64 `json:"nsPerOp"`
	MBPerSec float64 `json:"mbPerSec"`
}

// Report is one run of the benchmark command.
type Report struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Arch is runtime.GOARCH of the machine that produced the report
	Arch string `json:"arch"`

	// Active is the backend the registry selected on that machine
	Active string `json:"active"`

	// Size is the buffer size in bytes handed to each kernel call
	Size int `json:"size"`

	// Iterations is the number of calls timed per result
	Iterations int `json:"iterations"`

	Results []Result `json:"results"`
}

// Info contains report metadata without the individual results.
type Info struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Arch      string    `json:"arch"`
	Active    string    `json:"active"`
	Size      int       `json:"size"`
	Results   int       `json:"results"`

	// Best is the highest throughput of any result, in MB/s
	Best float64 `json:"best"`
}

// NewReport creates a report with a fresh random ID stamped with the current time.
func NewReport(arch, active string, size, iterations int, results []Result) *Report {
	return &Report{
		ID:         uuid.New().String(),
		Timestamp:  time.Now(),
		Arch:       arch,
		Active:     active,
		Size:       size,
		Iterations: iterations,
		Results:    results,
	}
}

// ToInfo converts a full Report to Info (metadata only).
func (r *Report) ToInfo() Info {
	info := Info{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Arch:      r.Arch,
		Active:    r.Active,
		Size:      r.Size,
		Results:   len(r.Results),
	}
	for _, res := range r.Results {
		if res.MBPerSec > info.Best {
			info.Best = res.MBPerSec
		}
	}
	return info
}

// Validate checks if the report has valid data.
// Returns a *ValidationError naming the first offending field.
func (r *Report) Validate() error {
	if err := ValidateID(r.ID); err != nil {
		return err
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if r.Arch == "" {
		return &ValidationError{Field: "Arch", Reason: "cannot be empty"}
	}
	if r.Active == "" {
		return &ValidationError{Field: "Active", Reason: "cannot be empty"}
	}
	if r.Size <= 0 {
		return &ValidationError{Field: "Size", Reason: "must be positive"}
	}
	if r.Iterations <= 0 {
		return &ValidationError{Field: "Iterations", Reason: "must be positive"}
	}
	if len(r.Results) == 0 {
		return &ValidationError{Field: "Results", Reason: "cannot be empty"}
	}
	for _, res := range r.Results {
		if res.Kernel == "" || res.Backend == "" {
			return &ValidationError{Field: "Results", Reason: "kernel and backend cannot be empty"}
		}
		if res.Bytes <= 0 || res.NsPerOp <= 0 || res.MBPerSec < 0 {
			return &ValidationError{Field: "Results", Reason: "measurements must be positive"}
		}
	}
	return nil
}

// ValidateID checks that id is a UUID. Report IDs double as file names, so
// anything else is rejected before it reaches the filesystem.
func ValidateID(id string) error {
	if id == "" {
		return &ValidationError{Field: "ID", Reason: "cannot be empty"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &ValidationError{Field: "ID", Reason: "must be a UUID"}
	}
	return nil
}

// ValidationError represents a report validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
