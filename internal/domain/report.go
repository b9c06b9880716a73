package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/numerology-api/internal/domain/numerology"
)

// Common validation errors for SavedReport
var (
	ErrEmptyReportID        = errors.New("report ID cannot be empty")
	ErrEmptyReportBirthDate = errors.New("report birth date cannot be empty")
	ErrEmptyReportPayload   = errors.New("report payload cannot be empty")
	ErrReportMismatch       = errors.New("report summary does not match payload")
)

// SavedReport is a computed numerology report kept for later retrieval.
// The summary columns duplicate values from the payload so that listings
// never have to decode it.
type SavedReport struct {
	ID        uuid.UUID          `json:"id"`
	BirthDate string             `json:"birth_date"`
	Name      string             `json:"name,omitempty"`
	LifePath  int                `json:"life_path"`
	Destiny   int                `json:"destiny"`
	Report    *numerology.Report `json:"report,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewSavedReport wraps a computed report for persistence.
// It generates a new UUID and copies the summary fields out of the report.
// Returns an error if validation fails.
func NewSavedReport(report *numerology.Report, now time.Time) (*SavedReport, error) {
	if report == nil {
		return nil, ErrEmptyReportPayload
	}

	saved := &SavedReport{
		ID:        uuid.New(),
		BirthDate: report.PersonalNumbers.BirthDate,
		Name:      report.PersonalNumbers.Name,
		LifePath:  report.PersonalNumbers.LifePath,
		Destiny:   report.PersonalNumbers.Destiny,
		Report:    report,
		CreatedAt: now.UTC(),
	}

	if err := saved.Validate(); err != nil {
		return nil, err
	}

	return saved, nil
}

// Validate checks if the SavedReport has valid data.
func (r *SavedReport) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReportID
	}

	if r.BirthDate == "" {
		return ErrEmptyReportBirthDate
	}

	if _, err := numerology.ParseBirthDate(r.BirthDate); err != nil {
		return err
	}

	if r.Report == nil {
		return ErrEmptyReportPayload
	}

	pn := r.Report.PersonalNumbers
	if pn.BirthDate != r.BirthDate || pn.LifePath != r.LifePath || pn.Destiny != r.Destiny {
		return ErrReportMismatch
	}

	return nil
}
