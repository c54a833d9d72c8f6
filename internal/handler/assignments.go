package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
)

type assignedProject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AssignProjects 把一个用户批量分配到多个项目。
// 写入时不做去重，同一个用户可以被重复分配到同一个项目，今日日报视图在读取时去重。
func (h *Handler) AssignProjects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     int64   `json:"userID" validate:"required,gt=0"`
		ProjectIDs []int64 `json:"projectIDs" validate:"required,min=1,dive,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetUserByID(req.UserID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "用户不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.CreateAssignments(req.UserID, req.ProjectIDs); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "项目分配成功", nil)
}

// GetUserAssignedProjects 返回某个用户被分配到的项目列表，
// 项目已被删除的分配记录会被跳过
func (h *Handler) GetUserAssignedProjects(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	details, err := h.repository.GetAssignmentDetailsByUser(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	projects := make([]assignedProject, 0, len(details))
	for _, detail := range details {
		if detail.ProjectName == nil {
			continue
		}
		projects = append(projects, assignedProject{
			ID:   detail.ProjectID,
			Name: *detail.ProjectName,
		})
	}

	h.successResponse(w, r, "获取分配项目成功", projects)
}

// GetMyProjects 返回当前登录用户被分配到的项目列表
func (h *Handler) GetMyProjects(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	details, err := h.repository.GetAssignmentDetailsByUser(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	projects := make([]assignedProject, 0, len(details))
	for _, detail := range details {
		if detail.ProjectName == nil {
			continue
		}
		projects = append(projects, assignedProject{
			ID:   detail.ProjectID,
			Name: *detail.ProjectName,
		})
	}

	h.successResponse(w, r, "获取分配项目成功", projects)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.Assignment)

	if err := h.repository.DeleteAssignment(assignment.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除分配记录成功", nil)
}
