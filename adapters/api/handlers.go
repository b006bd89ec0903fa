// Package api exposes the assessment service over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"go.uber.org/zap"

	"sizhen/adapters/excel"
	"sizhen/app"
	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
	"sizhen/internal/errors"
	"sizhen/internal/report"
)

// Handlers serves the assessment endpoints.
type Handlers struct {
	service  *app.AssessmentService
	exporter *excel.Exporter
	logger   *zap.Logger
}

func NewHandlers(service *app.AssessmentService, exporter *excel.Exporter, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{service: service, exporter: exporter, logger: logger}
}

// analyzeRequest is the direct-analysis request body.
type analyzeRequest struct {
	PatientID    string                   `json:"patient_id"`
	Observations diagnosis.ObservationSet `json:"observations"`
}

// AnalyzeObservations handles POST /api/v1/assessments.
func (h *Handlers) AnalyzeObservations(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, "malformed request body"))
		return
	}
	patientID, err := core.ParsePatientID(req.PatientID)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, err.Error()))
		return
	}
	for m := range req.Observations {
		if !m.IsValid() {
			h.writeError(w, http.StatusBadRequest, errors.WithCode(errors.CodeInvalidInput,
				fmt.Errorf("%w %q", core.ErrUnknownModality, m)))
			return
		}
	}

	result, err := h.service.AnalyzeObservations(r.Context(), patientID, req.Observations)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

// AnalyzePatient handles POST /api/v1/patients/{patientID}/assessments:
// observations are fetched from the configured modality services.
func (h *Handlers) AnalyzePatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := core.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, err.Error()))
		return
	}

	result, err := h.service.AnalyzePatient(r.Context(), patientID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

// GetAssessment handles GET /api/v1/assessments/{assessmentID}.
func (h *Handlers) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseAssessmentID(chi.URLParam(r, "assessmentID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, err.Error()))
		return
	}

	stored, err := h.service.GetAssessment(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stored)
}

// GetReport handles GET /api/v1/assessments/{assessmentID}/report. The
// default rendering is markdown; ?format=html converts it.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseAssessmentID(chi.URLParam(r, "assessmentID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, err.Error()))
		return
	}

	stored, err := h.service.GetAssessment(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	md := report.Markdown(stored.PatientID, stored.Assessment, nil)
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(markdown.ToHTML([]byte(md), nil, nil))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}

// ListAssessments handles GET /api/v1/patients/{patientID}/assessments.
func (h *Handlers) ListAssessments(w http.ResponseWriter, r *http.Request) {
	patientID, err := core.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, err.Error()))
		return
	}

	stored, err := h.service.ListPatientAssessments(r.Context(), patientID, parseLimit(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stored)
}

// ExportAssessments handles GET /api/v1/patients/{patientID}/assessments/export,
// streaming the patient's audit trail as a spreadsheet.
func (h *Handlers) ExportAssessments(w http.ResponseWriter, r *http.Request) {
	patientID, err := core.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidInput, err.Error()))
		return
	}

	stored, err := h.service.ListPatientAssessments(r.Context(), patientID, 0)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="assessments.xlsx"`)
	if err := h.exporter.Write(w, stored); err != nil {
		h.logger.Error("streaming assessment export failed", zap.Error(err))
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encoding response failed", zap.Error(err))
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Message: err.Error()})
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case core.IsNotFoundError(err):
		h.writeError(w, http.StatusNotFound, errors.WithCode(errors.CodeNotFound, err))
	case core.IsInsufficientDataError(err):
		h.writeError(w, http.StatusUnprocessableEntity, err)
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, err)
	}
}

func parseLimit(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
