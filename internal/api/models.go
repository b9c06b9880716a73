package api

import (
	"github.com/phrazzld/numerology-api/internal/domain"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
)

// MaxBatchItems is the hard upper bound of a batch request; the service may
// enforce a lower one from configuration.
const MaxBatchItems = 100

// ReportRequest is the payload of POST /api/reports.
type ReportRequest struct {
	BirthDate string `json:"birth_date" validate:"required,max=32"`
	Name      string `json:"name"       validate:"max=200"`
	// Save persists the report and answers 201 with the saved record.
	Save bool `json:"save"`
}

// BatchItemRequest is one entry of a batch request.
type BatchItemRequest struct {
	BirthDate string `json:"birth_date" validate:"required,max=32"`
	Name      string `json:"name"       validate:"max=200"`
}

// BatchRequest is the payload of POST /api/reports/batch.
type BatchRequest struct {
	Items []BatchItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// BatchItemResponse carries either a report or an error message.
type BatchItemResponse struct {
	Report *numerology.Report `json:"report,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// BatchResponse keeps results in request order.
type BatchResponse struct {
	Results []BatchItemResponse `json:"results"`
}

// CompatibilityRequest is the payload of POST /api/compatibility.
type CompatibilityRequest struct {
	FirstBirthDate  string `json:"first_birth_date"  validate:"required,max=32"`
	SecondBirthDate string `json:"second_birth_date" validate:"required,max=32"`
}

// InterpretationRequest is the payload of POST /api/interpretations.
type InterpretationRequest struct {
	BirthDate string `json:"birth_date" validate:"required,max=32"`
	Name      string `json:"name"       validate:"max=200"`
}

// ListReportsResponse is a page of saved report summaries.
type ListReportsResponse struct {
	Reports []*domain.SavedReport `json:"reports"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}
