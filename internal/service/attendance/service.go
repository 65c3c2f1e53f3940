package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/auth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/employee"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/salarymonth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
)

// AttendanceServiceImpl is the ledger. Now is injectable so tests can pin
// the clock; production wiring leaves it as time.Now.
type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	policyService  policy.PolicyService
	Now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policyService policy.PolicyService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policyService:  policyService,
		Now:            time.Now,
	}
}

func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeUID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if _, err := s.employeeRepo.GetByUID(ctx, employeeUID); err != nil {
		return attendance.RecordResponse{}, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.Now()
	day := salarymonth.Day(now)

	if req.IsEarlyOff {
		return s.earlyOff(ctx, employeeUID, day, now, pol)
	}

	rec := attendance.Record{
		EmployeeUID:    employeeUID,
		Date:           day,
		Status:         req.Status,
		MarkedBy:       attendance.MarkedBySelf,
		OvertimeStatus: attendance.OvertimeApproved,
	}

	switch req.Status {
	case attendance.StatusPresent:
		status, lateMinutes := Classify(now, pol)
		rec.Status = status
		rec.LateMinutes = lateMinutes
		rec.InTime = &now
	case attendance.StatusLeave:
		rec.LeaveReason = req.LeaveReason
	case attendance.StatusOff:
	}

	created, ok, err := s.attendanceRepo.CreateIfAbsent(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !ok {
		return attendance.RecordResponse{}, attendance.ErrAlreadyMarked
	}
	return toResponse(created), nil
}

// earlyOff closes out today's record. Only presence records can be closed;
// re-applying after the record is settled is not an error, the caller
// observes the settled record.
func (s *AttendanceServiceImpl) earlyOff(ctx context.Context, employeeUID string, day time.Time, now time.Time, pol policy.Policy) (attendance.RecordResponse, error) {
	earlyLeave := EarlyLeaveHours(now, pol)
	overtime := OvertimeHours(now, pol)

	rec, ok, err := s.attendanceRepo.SetClockOut(ctx, employeeUID, day, now, earlyLeave, overtime)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec == nil {
		return attendance.RecordResponse{}, attendance.ErrNotMarkedYet
	}
	if !ok && !rec.Status.IsPresence() {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}
	return toResponse(*rec), nil
}

func (s *AttendanceServiceImpl) AdminUpsert(ctx context.Context, req attendance.AdminUpsertRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(salarymonth.Day(s.Now())); err != nil {
		return attendance.RecordResponse{}, err
	}

	adminUID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if _, err := s.employeeRepo.GetByUID(ctx, req.EmployeeUID); err != nil {
		return attendance.RecordResponse{}, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	day, err := salarymonth.ParseDay(req.Date)
	if err != nil {
		return attendance.RecordResponse{}, validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}

	rec := attendance.Record{
		EmployeeUID:    req.EmployeeUID,
		Date:           day,
		MarkedBy:       adminUID,
		OvertimeStatus: attendance.OvertimeApproved,
	}

	switch req.Mode {
	case attendance.ModeAttendance:
		in, _ := time.Parse(time.RFC3339, *req.InTime)
		status, lateMinutes := Classify(in, pol)
		rec.Status = status
		rec.LateMinutes = lateMinutes
		rec.InTime = &in
		if req.OutTime != nil {
			out, _ := time.Parse(time.RFC3339, *req.OutTime)
			rec.OutTime = &out
			rec.EarlyLeaveHours = EarlyLeaveHours(out, pol)
			rec.OvertimeHours = OvertimeHours(out, pol)
		}
	case attendance.ModeLeave:
		rec.Status = attendance.StatusLeave
		rec.LeaveReason = req.LeaveReason
	case attendance.ModeOff:
		rec.Status = attendance.StatusOff
	}

	saved, err := s.attendanceRepo.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(saved), nil
}

func (s *AttendanceServiceImpl) QueryByDate(ctx context.Context, date string, employeeUID *string) ([]attendance.RecordResponse, error) {
	day, err := salarymonth.ParseDay(date)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}

	if employeeUID != nil {
		rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, *employeeUID, day)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return []attendance.RecordResponse{}, nil
		}
		return []attendance.RecordResponse{toResponse(*rec)}, nil
	}

	records, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func (s *AttendanceServiceImpl) MonthlyRecords(ctx context.Context, employeeUID string, monthKey string) ([]attendance.RecordResponse, error) {
	key, err := salarymonth.Parse(monthKey)
	if err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.GetByUID(ctx, employeeUID); err != nil {
		return nil, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return nil, err
	}
	start, end := key.Range(pol.SalaryStartDay)

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeUID, start, end)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func (s *AttendanceServiceImpl) Recompute(ctx context.Context, monthKey string) (attendance.RecomputeResult, error) {
	key, err := salarymonth.Parse(monthKey)
	if err != nil {
		return attendance.RecomputeResult{}, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return attendance.RecomputeResult{}, err
	}
	start, end := key.Range(pol.SalaryStartDay)

	records, err := s.attendanceRepo.ListByRange(ctx, start, end)
	if err != nil {
		return attendance.RecomputeResult{}, err
	}

	result := attendance.RecomputeResult{MonthKey: string(key), Scanned: len(records)}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		// Only clock-based records are reclassified; leave, off and holiday
		// carry no times to replay.
		if rec.InTime == nil {
			continue
		}

		status, lateMinutes := Classify(*rec.InTime, pol)
		earlyLeave, overtime := 0.0, 0.0
		if rec.OutTime != nil {
			earlyLeave = EarlyLeaveHours(*rec.OutTime, pol)
			overtime = OvertimeHours(*rec.OutTime, pol)
		}

		if status == rec.Status && lateMinutes == rec.LateMinutes &&
			earlyLeave == rec.EarlyLeaveHours && overtime == rec.OvertimeHours {
			continue
		}

		rec.Status = status
		rec.LateMinutes = lateMinutes
		rec.EarlyLeaveHours = earlyLeave
		rec.OvertimeHours = overtime
		if err := s.attendanceRepo.Rewrite(ctx, rec); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", rec.EmployeeUID, salarymonth.FormatDay(rec.Date), err))
			continue
		}
		result.Updated++
	}
	return result, nil
}

func (s *AttendanceServiceImpl) DecideOvertime(ctx context.Context, req attendance.OvertimeDecisionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	day, err := salarymonth.ParseDay(req.Date)
	if err != nil {
		return attendance.RecordResponse{}, validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}

	rec, err := s.attendanceRepo.SetOvertimeStatus(ctx, req.EmployeeUID, day, attendance.OvertimeStatus(req.Decision), req.Note)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

func claimsFromContext(ctx context.Context) (employeeUID string, isAdmin bool, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false, auth.ErrInvalidToken
	}
	employeeUID, ok := claims["employee_uid"].(string)
	if !ok || employeeUID == "" {
		return "", false, auth.ErrInvalidToken
	}
	isAdmin, _ = claims["is_admin"].(bool)
	return employeeUID, isAdmin, nil
}

func toResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:              rec.ID,
		EmployeeUID:     rec.EmployeeUID,
		EmployeeName:    rec.EmployeeName,
		EmployeeCode:    rec.EmployeeCode,
		Date:            salarymonth.FormatDay(rec.Date),
		Status:          rec.Status,
		LeaveReason:     rec.LeaveReason,
		MarkedBy:        rec.MarkedBy,
		LateMinutes:     rec.LateMinutes,
		EarlyLeaveHours: rec.EarlyLeaveHours,
		OvertimeHours:   rec.OvertimeHours,
		OvertimeStatus:  string(rec.OvertimeStatus),
		OvertimeNote:    rec.OvertimeNote,
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.InTime != nil {
		in := rec.InTime.Format(time.RFC3339)
		resp.InTime = &in
	}
	if rec.OutTime != nil {
		out := rec.OutTime.Format(time.RFC3339)
		resp.OutTime = &out
	}
	return resp
}

func toResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}
	return responses
}
