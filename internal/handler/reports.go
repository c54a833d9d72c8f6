package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/reconcile"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/utils"
)

// SubmitReport 提交一份日报。一份日报只针对一个项目，可以包含多条工作记录。
// 项目名会在这里做快照，之后项目改名不会影响已提交的日报。
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		ProjectID int64 `json:"projectID" validate:"required,gt=0"`
		Entries   []struct {
			TaskNumber      int32  `json:"taskNumber" validate:"required,gt=0"`
			WorkType        string `json:"workType" validate:"required"`
			WorkDescription string `json:"workDescription" validate:"required"`
		} `json:"entries" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	project, err := h.repository.GetProjectByID(req.ProjectID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "项目不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	report := &domain.Report{
		UserID:      myInfo.ID,
		ProjectID:   &project.ID,
		ProjectName: project.Name,
		Entries:     make([]domain.ReportEntry, 0, len(req.Entries)),
	}
	for _, entry := range req.Entries {
		report.Entries = append(report.Entries, domain.ReportEntry{
			TaskNumber:      entry.TaskNumber,
			WorkType:        entry.WorkType,
			WorkDescription: entry.WorkDescription,
		})
	}

	if err := h.repository.CreateReport(report); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "日报提交成功", report)
}

func (h *Handler) GetAllReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.repository.GetAllReports()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取日报列表成功", reports)
}

func (h *Handler) GetUserReports(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	reports, err := h.repository.GetReportsByUser(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取用户日报成功", reports)
}

// GetMyReports 按日、月或年筛选当前用户的日报，
// filterType 取 date、month 或 year，filterValue 是对应的时间值。
// 筛选参数不合法时直接拒绝，不会访问数据库。
func (h *Handler) GetMyReports(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	filterType := r.URL.Query().Get("filterType")
	filterValue := r.URL.Query().Get("filterValue")

	var start, end time.Time

	switch filterType {
	case "date":
		t, err := time.ParseInLocation("2006-01-02", filterValue, time.Local)
		if err != nil {
			h.errorResponse(w, r, "日期格式无效")
			return
		}
		start, end = utils.DayBounds(t)
	case "month":
		t, err := time.ParseInLocation("2006-01", filterValue, time.Local)
		if err != nil {
			h.errorResponse(w, r, "月份格式无效")
			return
		}
		start, end = utils.MonthBounds(t)
	case "year":
		year, err := strconv.Atoi(filterValue)
		if err != nil {
			h.errorResponse(w, r, "年份格式无效")
			return
		}
		start, end = utils.YearBounds(year, time.Local)
	default:
		h.errorResponse(w, r, "无效的筛选类型")
		return
	}

	reports, err := h.repository.GetReportsByUserBetween(myInfo.ID, start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取日报成功", reports)
}

// GetTodayReports 返回今日日报视图：每个有分配记录的用户一项，
// 按项目逐行列出当天的工作记录，没有提交日报的项目补一个空行。
// 日期窗口以请求开始时的服务器本地时间为准。
func (h *Handler) GetTodayReports(w http.ResponseWriter, r *http.Request) {
	start, end := utils.DayBounds(time.Now())

	// 分配记录和当天的日报是两个独立的查询，之间没有依赖，可以并发执行，
	// 但对账必须等两者都完成之后才能开始
	var (
		assignments    []*domain.AssignmentDetail
		reports        []*domain.ReportDetail
		assignmentsErr error
		reportsErr     error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		assignments, assignmentsErr = h.repository.GetAllAssignmentDetails()
	}()
	go func() {
		defer wg.Done()
		reports, reportsErr = h.repository.GetReportDetailsBetween(start, end)
	}()
	wg.Wait()

	// 任何一个查询失败都让整个请求失败，不返回不完整的结果
	if assignmentsErr != nil {
		h.internalServerError(w, r, assignmentsErr)
		return
	}
	if reportsErr != nil {
		h.internalServerError(w, r, reportsErr)
		return
	}

	assignmentMap, skippedAssignments := reconcile.BuildAssignmentMap(assignments)
	entries, skippedReports := reconcile.FlattenReports(reports)

	// 悬空引用逐条静默跳过，只在这里汇总记录一次数量
	if skippedAssignments > 0 || skippedReports > 0 {
		slog.Warn("今日日报视图跳过了存在悬空引用的记录",
			"skippedAssignments", skippedAssignments,
			"skippedReports", skippedReports,
		)
	}

	result := reconcile.Reconcile(assignmentMap, entries)

	h.successResponse(w, r, "获取今日日报成功", reconcile.Format(assignmentMap, result))
}
