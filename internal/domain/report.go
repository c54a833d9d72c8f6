package domain

import "time"

type ReportEntry struct {
	ID              int64  `json:"id"`
	TaskNumber      int32  `json:"taskNumber"`
	WorkType        string `json:"workType"`
	WorkDescription string `json:"workDescription"`
}

// Report 是一次日报提交，一次提交只针对一个项目，但可以包含多条工作记录。
// ProjectName 是提交时的项目名快照，项目改名后不会回溯更新。
// 早期的日报只有单条工作记录（字段直接存在 reports 表上），
// repository 在读取时会把两种形态统一成 Entries，上层只会看到这一种形态。
type Report struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userID"`
	ProjectID   *int64        `json:"projectID"`
	ProjectName string        `json:"projectName"`
	Entries     []ReportEntry `json:"entries"`
	CreatedAt   time.Time     `json:"createdAt"`
	Version     int32         `json:"-"`
}

// ReportDetail 是关联查询出来的日报，提交者被删除后 UserFullName 为 nil。
type ReportDetail struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"userID"`
	UserFullName *string       `json:"userFullName"`
	ProjectID    *int64        `json:"projectID"`
	ProjectName  string        `json:"projectName"`
	Entries      []ReportEntry `json:"entries"`
	CreatedAt    time.Time     `json:"createdAt"`
}
