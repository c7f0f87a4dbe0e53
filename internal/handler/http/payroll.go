package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/payroll"
	"github.com/hoangson-hr/payday-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	OpenCycle(w http.ResponseWriter, r *http.Request)
	ListCycles(w http.ResponseWriter, r *http.Request)
	RecalculateCycle(w http.ResponseWriter, r *http.Request)
	LockCycle(w http.ResponseWriter, r *http.Request)
	ListCycleRecords(w http.ResponseWriter, r *http.Request)
	CycleSummary(w http.ResponseWriter, r *http.Request)
	ExportCycleCSV(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	UpdateMetrics(w http.ResponseWriter, r *http.Request)
	ConfirmRecord(w http.ResponseWriter, r *http.Request)
	DisputeRecord(w http.ResponseWriter, r *http.Request)
	ResolveFeedback(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// OpenCycle implements PayrollHandler. Admin only.
func (h *payrollHandlerImpl) OpenCycle(w http.ResponseWriter, r *http.Request) {
	var req payroll.OpenCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.OpenCycle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll cycle opened", result)
}

// ListCycles implements PayrollHandler.
func (h *payrollHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListCycles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecalculateCycle implements PayrollHandler. Admin only.
func (h *payrollHandlerImpl) RecalculateCycle(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.RecalculateCycle(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cycle recalculated", result)
}

// LockCycle implements PayrollHandler. Admin only.
func (h *payrollHandlerImpl) LockCycle(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.LockCycle(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Cycle locked and marked paid", result)
}

// ListCycleRecords implements PayrollHandler.
func (h *payrollHandlerImpl) ListCycleRecords(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListCycleRecords(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CycleSummary implements PayrollHandler.
func (h *payrollHandlerImpl) CycleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.CycleSummary(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCycleCSV implements PayrollHandler. Streams the cycle as a CSV
// attachment instead of the JSON envelope.
func (h *payrollHandlerImpl) ExportCycleCSV(w http.ResponseWriter, r *http.Request) {
	cycleID := chi.URLParam(r, "cycleID")

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-%s.csv"`, cycleID))

	if err := h.payrollService.ExportCycleCSV(r.Context(), cycleID, w); err != nil {
		// Headers may already be out; the truncated body is the best signal left.
		response.HandleError(w, err)
		return
	}
}

// GetRecord implements PayrollHandler.
func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPayslip(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMetrics implements PayrollHandler. Admin only.
func (h *payrollHandlerImpl) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "recordID")

	result, err := h.payrollService.UpdateMetrics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Metrics updated", result)
}

// ConfirmRecord implements PayrollHandler. The caller can only confirm their
// own record.
func (h *payrollHandlerImpl) ConfirmRecord(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	result, err := h.payrollService.ConfirmRecord(r.Context(), chi.URLParam(r, "recordID"), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record confirmed", result)
}

// DisputeRecord implements PayrollHandler.
func (h *payrollHandlerImpl) DisputeRecord(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	var req payroll.DisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "recordID")
	req.EmployeeID = employeeID

	result, err := h.payrollService.DisputeRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dispute filed", result)
}

// ResolveFeedback implements PayrollHandler. Admin only.
func (h *payrollHandlerImpl) ResolveFeedback(w http.ResponseWriter, r *http.Request) {
	var req payroll.ResolveFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RecordID = chi.URLParam(r, "recordID")
	req.FeedbackID = chi.URLParam(r, "feedbackID")

	result, err := h.payrollService.ResolveFeedback(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Feedback resolved", result)
}
