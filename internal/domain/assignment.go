package domain

import "time"

// Assignment 是用户和项目之间的关联记录，允许重复分配，
// 读取时才去重。记录只会被整条删除，不会被修改。
type Assignment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	ProjectID int64     `json:"projectID"`
	CreatedAt time.Time `json:"createdAt"`
}

// AssignmentDetail 是关联查询出来的分配记录，
// 用户或项目被删除后引用会悬空，对应的名字为 nil。
type AssignmentDetail struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userID"`
	UserFullName *string   `json:"userFullName"`
	ProjectID    int64     `json:"projectID"`
	ProjectName  *string   `json:"projectName"`
	CreatedAt    time.Time `json:"createdAt"`
}
