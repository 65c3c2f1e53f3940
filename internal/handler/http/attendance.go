package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/auth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	DecideOvertime(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	var employeeUID *string
	if uid := r.URL.Query().Get("employee_uid"); uid != "" {
		employeeUID = &uid
	}

	result, err := h.attendanceService.QueryByDate(r.Context(), date, employeeUID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements AttendanceHandler. Non-admins can only read their own
// month.
func (h *attendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.attendanceService.MonthlyRecords(r.Context(), employeeUID, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upsert implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdminUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeUID = chi.URLParam(r, "employeeUID")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.AdminUpsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved", result)
}

// Recompute implements AttendanceHandler.
func (h *attendanceHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Recompute(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recompute finished", result)
}

// DecideOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) DecideOvertime(w http.ResponseWriter, r *http.Request) {
	var req attendance.OvertimeDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeUID = chi.URLParam(r, "employeeUID")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.DecideOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime decision saved", result)
}
