package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
)

// CreateReport 插入一条日报及其工作记录。
// 新提交的日报只写 report_entries，reports 表上的旧单条字段保持为 NULL。
func (r *Repository) CreateReport(report *domain.Report) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO reports (user_id, project_id, project_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, report.UserID, report.ProjectID, report.ProjectName).Scan(&report.ID, &report.CreatedAt, &report.Version); err != nil {
		return err
	}

	for i := range report.Entries {
		query = `
			INSERT INTO report_entries (report_id, task_number, work_type, work_description)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		params := []any{report.ID, report.Entries[i].TaskNumber, report.Entries[i].WorkType, report.Entries[i].WorkDescription}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&report.Entries[i].ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// reportRow 是日报查询结果的一行，旧日报的单条字段和新日报的子表字段都可能为 NULL
type reportRow struct {
	ID          int64
	UserID      int64
	ProjectID   sql.NullInt64
	ProjectName string
	CreatedAt   time.Time

	LegacyTaskNumber      sql.NullInt32
	LegacyWorkType        sql.NullString
	LegacyWorkDescription sql.NullString

	EntryID              sql.NullInt64
	EntryTaskNumber      sql.NullInt32
	EntryWorkType        sql.NullString
	EntryWorkDescription sql.NullString
}

// appendEntry 在报告上追加当前行对应的工作记录。
// 早期的日报只有一条工作记录，直接存在 reports 表上；之后的日报把工作记录存在
// report_entries 子表里。这里把两种形态统一成 Entries，上层只会看到统一后的形态。
func appendEntry(entries []domain.ReportEntry, row *reportRow) []domain.ReportEntry {
	if row.EntryID.Valid {
		return append(entries, domain.ReportEntry{
			ID:              row.EntryID.Int64,
			TaskNumber:      row.EntryTaskNumber.Int32,
			WorkType:        row.EntryWorkType.String,
			WorkDescription: row.EntryWorkDescription.String,
		})
	}

	if row.LegacyTaskNumber.Valid {
		return append(entries, domain.ReportEntry{
			TaskNumber:      row.LegacyTaskNumber.Int32,
			WorkType:        row.LegacyWorkType.String,
			WorkDescription: row.LegacyWorkDescription.String,
		})
	}

	return entries
}

// GetReportDetailsBetween 返回创建时间落在闭区间 [start, end] 内的所有日报，
// 从新到旧排列，并把提交者的引用解析成姓名。
// 提交者被删除后日报仍然存在，此时 UserFullName 为 nil，由上层决定怎么处理。
func (r *Repository) GetReportDetailsBetween(start time.Time, end time.Time) ([]*domain.ReportDetail, error) {
	query := `
		SELECT
			r.id,
			r.user_id,
			u.full_name,
			r.project_id,
			r.project_name,
			r.created_at,
			r.task_number,
			r.work_type,
			r.work_description,
			e.id,
			e.task_number,
			e.work_type,
			e.work_description
		FROM reports r
		LEFT JOIN users u ON r.user_id = u.id
		LEFT JOIN report_entries e ON r.id = e.report_id
		WHERE r.created_at BETWEEN $1 AND $2
		ORDER BY r.created_at DESC, r.id DESC, e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detailsMap := make(map[int64]*domain.ReportDetail)
	order := make([]int64, 0)

	for rows.Next() {
		var row reportRow
		var userFullName sql.NullString

		dst := []any{
			&row.ID,
			&row.UserID,
			&userFullName,
			&row.ProjectID,
			&row.ProjectName,
			&row.CreatedAt,
			&row.LegacyTaskNumber,
			&row.LegacyWorkType,
			&row.LegacyWorkDescription,
			&row.EntryID,
			&row.EntryTaskNumber,
			&row.EntryWorkType,
			&row.EntryWorkDescription,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		detail, exists := detailsMap[row.ID]
		if !exists {
			// 说明此时是第一次查到这条日报，需要在 map 中初始化这条日报
			detail = &domain.ReportDetail{
				ID:          row.ID,
				UserID:      row.UserID,
				ProjectName: row.ProjectName,
				CreatedAt:   row.CreatedAt,
				Entries:     make([]domain.ReportEntry, 0),
			}
			if userFullName.Valid {
				detail.UserFullName = &userFullName.String
			}
			if row.ProjectID.Valid {
				detail.ProjectID = &row.ProjectID.Int64
			}
			detailsMap[row.ID] = detail
			order = append(order, row.ID)
		}

		detail.Entries = appendEntry(detail.Entries, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 组装结果，这里不能直接迭代 map，否则会丢失从新到旧的顺序
	details := make([]*domain.ReportDetail, 0, len(order))
	for _, id := range order {
		details = append(details, detailsMap[id])
	}

	return details, nil
}

// collectReports 把日报查询结果组装成日报列表，保持查询结果的顺序
func collectReports(rows *sql.Rows) ([]*domain.Report, error) {
	reportsMap := make(map[int64]*domain.Report)
	order := make([]int64, 0)

	for rows.Next() {
		var row reportRow

		dst := []any{
			&row.ID,
			&row.UserID,
			&row.ProjectID,
			&row.ProjectName,
			&row.CreatedAt,
			&row.LegacyTaskNumber,
			&row.LegacyWorkType,
			&row.LegacyWorkDescription,
			&row.EntryID,
			&row.EntryTaskNumber,
			&row.EntryWorkType,
			&row.EntryWorkDescription,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		report, exists := reportsMap[row.ID]
		if !exists {
			report = &domain.Report{
				ID:          row.ID,
				UserID:      row.UserID,
				ProjectName: row.ProjectName,
				CreatedAt:   row.CreatedAt,
				Entries:     make([]domain.ReportEntry, 0),
			}
			if row.ProjectID.Valid {
				report.ProjectID = &row.ProjectID.Int64
			}
			reportsMap[row.ID] = report
			order = append(order, row.ID)
		}

		report.Entries = appendEntry(report.Entries, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	reports := make([]*domain.Report, 0, len(order))
	for _, id := range order {
		reports = append(reports, reportsMap[id])
	}

	return reports, nil
}

const reportColumns = `
	r.id,
	r.user_id,
	r.project_id,
	r.project_name,
	r.created_at,
	r.task_number,
	r.work_type,
	r.work_description,
	e.id,
	e.task_number,
	e.work_type,
	e.work_description
`

func (r *Repository) GetAllReports() ([]*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports r
		LEFT JOIN report_entries e ON r.id = e.report_id
		ORDER BY r.created_at DESC, r.id DESC, e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

func (r *Repository) GetReportsByUser(userID int64) ([]*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports r
		LEFT JOIN report_entries e ON r.id = e.report_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC, e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

// GetReportsByUserBetween 返回某个用户在闭区间 [start, end] 内提交的日报，从新到旧排列
func (r *Repository) GetReportsByUserBetween(userID int64, start time.Time, end time.Time) ([]*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports r
		LEFT JOIN report_entries e ON r.id = e.report_id
		WHERE r.user_id = $1 AND r.created_at BETWEEN $2 AND $3
		ORDER BY r.created_at DESC, r.id DESC, e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

func (r *Repository) GetReportsByProject(projectID int64) ([]*domain.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports r
		LEFT JOIN report_entries e ON r.id = e.report_id
		WHERE r.project_id = $1
		ORDER BY r.created_at DESC, r.id DESC, e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}
