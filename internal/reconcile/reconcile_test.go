package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func assignment(id int64, userID int64, userName string, projectID int64, projectName string) *domain.AssignmentDetail {
	detail := &domain.AssignmentDetail{
		ID:        id,
		UserID:    userID,
		ProjectID: projectID,
		CreatedAt: time.Now(),
	}
	if userName != "" {
		detail.UserFullName = strPtr(userName)
	}
	if projectName != "" {
		detail.ProjectName = strPtr(projectName)
	}
	return detail
}

func report(userID int64, userName string, projectName string, entries ...domain.ReportEntry) *domain.ReportDetail {
	detail := &domain.ReportDetail{
		UserID:      userID,
		ProjectName: projectName,
		Entries:     entries,
		CreatedAt:   time.Now(),
	}
	if userName != "" {
		detail.UserFullName = strPtr(userName)
	}
	return detail
}

func TestBuildAssignmentMap(t *testing.T) {
	t.Run("按首次出现顺序去重", func(t *testing.T) {
		details := []*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
			assignment(2, 1, "张三", 11, "Beta"),
			assignment(3, 1, "张三", 10, "Alpha"), // 重复分配
			assignment(4, 2, "李四", 11, "Beta"),
		}

		m, skipped := BuildAssignmentMap(details)

		require.Equal(t, 0, skipped)
		require.Equal(t, []int64{1, 2}, m.Users())
		require.Equal(t, []string{"Alpha", "Beta"}, m.Get(1).Projects)
		require.Equal(t, "张三", m.Get(1).FullName)
		require.Equal(t, []string{"Beta"}, m.Get(2).Projects)
	})

	t.Run("跳过悬空引用", func(t *testing.T) {
		details := []*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
			assignment(2, 1, "张三", 11, ""), // 项目已被删除
			assignment(3, 3, "", 10, "Alpha"), // 用户已被删除
		}

		m, skipped := BuildAssignmentMap(details)

		require.Equal(t, 2, skipped)
		require.Equal(t, []int64{1}, m.Users())
		require.Equal(t, []string{"Alpha"}, m.Get(1).Projects)
		// 只有悬空引用的记录被跳过，不会中断其余记录的处理
		assert.Nil(t, m.Get(3))
	})
}

func TestFlattenReports(t *testing.T) {
	t.Run("按传入顺序展开多条工作记录", func(t *testing.T) {
		details := []*domain.ReportDetail{
			report(1, "张三", "Alpha",
				domain.ReportEntry{TaskNumber: 1, WorkType: "开发", WorkDescription: "登录页"},
				domain.ReportEntry{TaskNumber: 2, WorkType: "测试", WorkDescription: "单元测试"},
			),
			report(2, "李四", "Beta",
				domain.ReportEntry{TaskNumber: 3, WorkType: "运维", WorkDescription: "部署"},
			),
		}

		entries, skipped := FlattenReports(details)

		require.Equal(t, 0, skipped)
		require.Len(t, entries, 3)
		assert.Equal(t, int32(1), entries[0].TaskNumber)
		assert.Equal(t, int32(2), entries[1].TaskNumber)
		assert.Equal(t, "Alpha", entries[0].ProjectName)
		assert.Equal(t, int64(2), entries[2].UserID)
	})

	t.Run("跳过提交者已被删除的日报", func(t *testing.T) {
		details := []*domain.ReportDetail{
			report(1, "", "Alpha", domain.ReportEntry{TaskNumber: 1, WorkType: "开发", WorkDescription: "x"}),
			report(2, "李四", "Beta", domain.ReportEntry{TaskNumber: 2, WorkType: "测试", WorkDescription: "y"}),
		}

		entries, skipped := FlattenReports(details)

		require.Equal(t, 1, skipped)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(2), entries[0].UserID)
	})
}

func TestReconcile(t *testing.T) {
	t.Run("没有日报的项目补空行", func(t *testing.T) {
		m, _ := BuildAssignmentMap([]*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
			assignment(2, 1, "张三", 11, "Beta"),
		})

		result := Reconcile(m, nil)

		require.Len(t, result[1].Rows, 2)
		assert.Equal(t, "Alpha", result[1].Rows[0].ProjectName)
		assert.Nil(t, result[1].Rows[0].TaskNumber)
		assert.Nil(t, result[1].Rows[0].WorkType)
		assert.Nil(t, result[1].Rows[0].WorkDescription)
		assert.Equal(t, "Beta", result[1].Rows[1].ProjectName)
		assert.Nil(t, result[1].Rows[1].TaskNumber)
	})

	t.Run("同一项目的多条工作记录各产生一行", func(t *testing.T) {
		m, _ := BuildAssignmentMap([]*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
		})
		entries := []FlatEntry{
			{UserID: 1, ProjectName: "Alpha", TaskNumber: 1, WorkType: "开发", WorkDescription: "a"},
			{UserID: 1, ProjectName: "Alpha", TaskNumber: 2, WorkType: "测试", WorkDescription: "b"},
		}

		result := Reconcile(m, entries)

		require.Len(t, result[1].Rows, 2)
		require.NotNil(t, result[1].Rows[0].TaskNumber)
		require.NotNil(t, result[1].Rows[1].TaskNumber)
		// 行的顺序和工作记录的提交顺序一致
		assert.Equal(t, int32(1), *result[1].Rows[0].TaskNumber)
		assert.Equal(t, int32(2), *result[1].Rows[1].TaskNumber)
	})

	t.Run("行数等于每个项目工作记录数与一之间的较大值之和", func(t *testing.T) {
		m, _ := BuildAssignmentMap([]*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
			assignment(2, 1, "张三", 11, "Beta"),
			assignment(3, 1, "张三", 12, "Gamma"),
		})
		entries := []FlatEntry{
			{UserID: 1, ProjectName: "Alpha", TaskNumber: 1, WorkType: "开发", WorkDescription: "a"},
			{UserID: 1, ProjectName: "Alpha", TaskNumber: 2, WorkType: "开发", WorkDescription: "b"},
			{UserID: 1, ProjectName: "Alpha", TaskNumber: 3, WorkType: "开发", WorkDescription: "c"},
			{UserID: 1, ProjectName: "Beta", TaskNumber: 4, WorkType: "测试", WorkDescription: "d"},
		}

		result := Reconcile(m, entries)

		// max(1,3) + max(1,1) + max(1,0) = 5
		require.Len(t, result[1].Rows, 5)
	})

	t.Run("未分配项目的工作记录不产生任何行", func(t *testing.T) {
		m, _ := BuildAssignmentMap([]*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
		})
		entries := []FlatEntry{
			{UserID: 1, ProjectName: "Gamma", TaskNumber: 9, WorkType: "开发", WorkDescription: "x"},
		}

		result := Reconcile(m, entries)

		require.Len(t, result[1].Rows, 1)
		assert.Equal(t, "Alpha", result[1].Rows[0].ProjectName)
		assert.Nil(t, result[1].Rows[0].TaskNumber)
	})

	t.Run("没有分配记录的用户不会出现在结果里", func(t *testing.T) {
		m, _ := BuildAssignmentMap([]*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
		})
		entries := []FlatEntry{
			{UserID: 2, ProjectName: "Alpha", TaskNumber: 1, WorkType: "开发", WorkDescription: "x"},
		}

		result := Reconcile(m, entries)

		require.Len(t, result, 1)
		assert.Nil(t, result[2])
	})

	t.Run("相同输入产生相同输出", func(t *testing.T) {
		m, _ := BuildAssignmentMap([]*domain.AssignmentDetail{
			assignment(1, 1, "张三", 10, "Alpha"),
			assignment(2, 2, "李四", 11, "Beta"),
		})
		entries := []FlatEntry{
			{UserID: 1, ProjectName: "Alpha", TaskNumber: 1, WorkType: "开发", WorkDescription: "a"},
		}

		first := Format(m, Reconcile(m, entries))
		second := Format(m, Reconcile(m, entries))

		require.Equal(t, first, second)
	})
}

func TestFormat(t *testing.T) {
	t.Run("按用户首次被分配的顺序排列", func(t *testing.T) {
		m, _ := BuildAssignmentMap([]*domain.AssignmentDetail{
			assignment(1, 5, "王五", 10, "Alpha"),
			assignment(2, 1, "张三", 11, "Beta"),
			assignment(3, 5, "王五", 11, "Beta"),
		})

		reports := Format(m, Reconcile(m, nil))

		require.Len(t, reports, 2)
		assert.Equal(t, "王五", reports[0].Name)
		assert.Equal(t, "张三", reports[1].Name)
		require.Len(t, reports[0].Reports, 2)
		require.Len(t, reports[1].Reports, 1)
	})
}
