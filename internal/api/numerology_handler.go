package api

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/numerology-api/internal/api/shared"
	"github.com/phrazzld/numerology-api/internal/platform/logger"
	"github.com/phrazzld/numerology-api/internal/service"
)

// NumerologyHandler handles the numerology HTTP endpoints.
type NumerologyHandler struct {
	service   service.NumerologyService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewNumerologyHandler creates a new NumerologyHandler.
func NewNumerologyHandler(svc service.NumerologyService, logger *slog.Logger) *NumerologyHandler {
	if svc == nil {
		// ALLOW-PANIC: constructor wiring bug
		panic("numerology service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names in validation messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &NumerologyHandler{
		service:   svc,
		validator: v,
		logger:    logger.With(slog.String("component", "numerology_handler")),
	}
}

// Routes mounts the handler under the current router.
func (h *NumerologyHandler) Routes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.CreateReport)
		r.Get("/", h.ListReports)
		r.Post("/batch", h.BatchReports)
		r.Get("/{id}", h.GetReport)
		r.Delete("/{id}", h.DeleteReport)
	})
	r.Get("/numbers/{kind}", h.GetNumber)
	r.Post("/compatibility", h.Compatibility)
	r.Post("/interpretations", h.Interpret)
}

// decodeAndValidate writes a 400 response and returns false when the body
// cannot be decoded or fails validation.
func (h *NumerologyHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := h.validator.Struct(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// CreateReport handles POST /api/reports.
func (h *NumerologyHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.Save {
		saved, err := h.service.SaveReport(r.Context(), req.BirthDate, req.Name)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to save report")
			return
		}
		logger.FromContextOrDefault(r.Context(), h.logger).Info("report saved",
			slog.String("report_id", saved.ID.String()))
		shared.RespondWithJSON(w, r, http.StatusCreated, saved)
		return
	}

	report, err := h.service.Report(r.Context(), req.BirthDate, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute report")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// GetReport handles GET /api/reports/{id}.
func (h *NumerologyHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	saved, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve report")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}

// ListReports handles GET /api/reports.
func (h *NumerologyHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := getPaging(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reports, err := h.service.ListReports(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reports")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ListReportsResponse{
		Reports: reports,
		Limit:   limit,
		Offset:  offset,
	})
}

// DeleteReport handles DELETE /api/reports/{id}.
func (h *NumerologyHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.DeleteReport(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete report")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BatchReports handles POST /api/reports/batch. Invalid items do not fail
// the request; their slot carries the error message instead.
func (h *NumerologyHandler) BatchReports(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	items := make([]service.BatchItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.BatchItem{BirthDate: item.BirthDate, Name: item.Name}
	}

	results, err := h.service.Batch(r.Context(), items)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute batch")
		return
	}

	resp := BatchResponse{Results: make([]BatchItemResponse, len(results))}
	for i, res := range results {
		if res.Err != nil {
			resp.Results[i] = BatchItemResponse{Error: GetSafeErrorMessage(res.Err)}
			continue
		}
		resp.Results[i] = BatchItemResponse{Report: res.Report}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetNumber handles GET /api/numbers/{kind}?birth_date=.
func (h *NumerologyHandler) GetNumber(w http.ResponseWriter, r *http.Request) {
	birthDate := r.URL.Query().Get("birth_date")
	if birthDate == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date: required field")
		return
	}

	result, err := h.service.Number(r.Context(), chi.URLParam(r, "kind"), birthDate)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to calculate number")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Compatibility handles POST /api/compatibility.
func (h *NumerologyHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	var req CompatibilityRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.Compatibility(r.Context(), req.FirstBirthDate, req.SecondBirthDate)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to calculate compatibility")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Interpret handles POST /api/interpretations.
func (h *NumerologyHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req InterpretationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.Interpret(r.Context(), req.BirthDate, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to interpret report")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
