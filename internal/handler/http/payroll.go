package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/auth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/payroll"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/handler/http/response"
)

type PayrollHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Report implements PayrollHandler. Non-admins can only read their own
// report.
func (h *payrollHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	callerUID, _ := claims["employee_uid"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	employeeUID := r.URL.Query().Get("employee_uid")
	if employeeUID == "" {
		employeeUID = callerUID
	}
	if employeeUID != callerUID && !isAdmin {
		response.HandleError(w, auth.ErrAdminPrivilegeRequired)
		return
	}

	result, err := h.payrollService.Report(r.Context(), employeeUID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyReport implements PayrollHandler.
func (h *payrollHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GenerateMonthlyReport(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecordPayment implements PayrollHandler.
func (h *payrollHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.RecordPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment recorded", result)
}

// ListPayments implements PayrollHandler.
func (h *payrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.PaymentsFor(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
