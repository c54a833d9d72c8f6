package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
)

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string  `json:"name" validate:"required"`
		URL  *string `json:"url" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 项目名不区分大小写，先做归一化后的存在性检查
	exists, err := h.repository.CheckProjectNameExists(req.Name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if exists {
		h.errorResponse(w, r, "项目已存在")
		return
	}

	project := &domain.Project{
		Name: req.Name,
		URL:  req.URL,
	}

	if err := h.repository.CreateProject(project); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			// 存在性检查和插入之间可能有并发写入，靠唯一索引兜底
			case pgErr.ConstraintName == "projects_name_lower_key":
				h.errorResponse(w, r, "项目已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "项目创建成功", project)
}

func (h *Handler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repository.GetAllProjects()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取项目列表成功", projects)
}

func (h *Handler) GetProjectInfo(w http.ResponseWriter, r *http.Request) {
	project := r.Context().Value(ProjectCtx).(*domain.Project)
	h.successResponse(w, r, "获取项目信息成功", project)
}

// UpdateProject 修改项目信息。项目改名不会影响已提交日报里的项目名快照
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name"`
		URL  *string `json:"url" validate:"omitempty,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.URL != nil {
		project.URL = req.URL
	}

	if err := h.repository.UpdateProject(project); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "projects_name_lower_key":
				h.errorResponse(w, r, "项目已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新项目信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新项目信息成功", project)
}

// DeleteProject 只删除项目本身，分配记录和日报不会被级联清理，
// 留下的悬空引用由读取侧跳过
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if err := h.repository.DeleteProject(project.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除项目成功", nil)
}

func (h *Handler) GetProjectReports(w http.ResponseWriter, r *http.Request) {
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	reports, err := h.repository.GetReportsByProject(project.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取项目日报成功", reports)
}
