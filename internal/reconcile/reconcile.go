// Package reconcile 实现今日日报视图的对账逻辑：
// 把分配记录和当天的日报提交合并成每个用户每个项目一行的结果，
// 没有提交日报的项目用空行补齐。
package reconcile

import (
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
)

// BuildAssignmentMap 把关联查询出来的分配记录聚合成用户到项目列表的映射。
// 用户或项目引用悬空的记录会被跳过，同一个用户重复分配到同一个项目只记一次，
// 项目顺序为首次分配的顺序。返回值的第二项是被跳过的记录数。
func BuildAssignmentMap(details []*domain.AssignmentDetail) (*AssignmentMap, int) {
	m := &AssignmentMap{
		byUser: make(map[int64]*UserAssignments),
		order:  make([]int64, 0),
	}
	skipped := 0

	for _, detail := range details {
		if detail.UserFullName == nil || detail.ProjectName == nil {
			// 引用悬空，跳过这条记录，继续处理剩下的记录
			skipped++
			continue
		}

		ua, exists := m.byUser[detail.UserID]
		if !exists {
			ua = &UserAssignments{
				FullName: *detail.UserFullName,
				Projects: make([]string, 0),
			}
			m.byUser[detail.UserID] = ua
			m.order = append(m.order, detail.UserID)
		}

		duplicate := false
		for _, name := range ua.Projects {
			if name == *detail.ProjectName {
				duplicate = true
				break
			}
		}
		if !duplicate {
			ua.Projects = append(ua.Projects, *detail.ProjectName)
		}
	}

	return m, skipped
}

// FlattenReports 把日报里的工作记录展开成一条条 FlatEntry，保持传入的顺序。
// 提交者引用悬空的日报会被整条跳过，返回值的第二项是被跳过的日报数。
func FlattenReports(details []*domain.ReportDetail) ([]FlatEntry, int) {
	entries := make([]FlatEntry, 0, len(details))
	skipped := 0

	for _, detail := range details {
		if detail.UserFullName == nil {
			skipped++
			continue
		}

		for _, entry := range detail.Entries {
			entries = append(entries, FlatEntry{
				UserID:          detail.UserID,
				ProjectName:     detail.ProjectName,
				TaskNumber:      entry.TaskNumber,
				WorkType:        entry.WorkType,
				WorkDescription: entry.WorkDescription,
			})
		}
	}

	return entries, skipped
}

// Reconcile 对每个有分配记录的用户，按分配的项目顺序逐个项目收集工作记录：
// 有记录的项目每条记录产生一行，没有记录的项目产生一个空行。
// 没有分配记录的用户不会出现在结果里，即使他当天提交了日报；
// 项目名不在分配列表里的工作记录也不会产生任何行。
// 纯函数，相同输入必然产生相同输出。
func Reconcile(m *AssignmentMap, entries []FlatEntry) map[int64]*UserRows {
	result := make(map[int64]*UserRows, len(m.order))

	for _, userID := range m.order {
		ua := m.byUser[userID]
		rows := make([]Row, 0, len(ua.Projects))

		for _, projectName := range ua.Projects {
			matched := false

			for i := range entries {
				if entries[i].UserID != userID || entries[i].ProjectName != projectName {
					continue
				}
				rows = append(rows, Row{
					ProjectName:     projectName,
					TaskNumber:      &entries[i].TaskNumber,
					WorkType:        &entries[i].WorkType,
					WorkDescription: &entries[i].WorkDescription,
				})
				matched = true
			}

			if !matched {
				rows = append(rows, Row{ProjectName: projectName})
			}
		}

		result[userID] = &UserRows{
			FullName: ua.FullName,
			Rows:     rows,
		}
	}

	return result
}

// Format 把对账结果整理成有序的列表，顺序为用户首次被分配项目的顺序
func Format(m *AssignmentMap, result map[int64]*UserRows) []*UserReport {
	reports := make([]*UserReport, 0, len(m.order))

	for _, userID := range m.order {
		rows, exists := result[userID]
		if !exists {
			continue
		}
		reports = append(reports, &UserReport{
			Name:    rows.FullName,
			Reports: rows.Rows,
		})
	}

	return reports
}
