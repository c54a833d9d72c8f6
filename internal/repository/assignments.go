package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
)

// CreateAssignments 把一个用户批量分配到多个项目。
// 这里不做去重，同一个用户可以被重复分配到同一个项目，读取侧会去重。
func (r *Repository) CreateAssignments(userID int64, projectIDs []int64) error {
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
		INSERT INTO assignments (user_id, project_id)
		VALUES ($1, $2)
	`

	for _, projectID := range projectIDs {
		if _, err := tx.ExecContext(ctx, query, userID, projectID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetAllAssignmentDetails 返回全部分配记录，并把用户和项目的引用解析成名字。
// 使用 LEFT JOIN 是有意为之：用户或项目被删除后分配记录仍然存在，
// 对应的名字列为 NULL，由上层决定怎么处理这些悬空引用。
func (r *Repository) GetAllAssignmentDetails() ([]*domain.AssignmentDetail, error) {
	query := `
		SELECT a.id, a.user_id, u.full_name, a.project_id, p.name, a.created_at
		FROM assignments a
		LEFT JOIN users u ON a.user_id = u.id
		LEFT JOIN projects p ON a.project_id = p.id
		ORDER BY a.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.AssignmentDetail, 0)
	for rows.Next() {
		detail := &domain.AssignmentDetail{}
		var userFullName, projectName sql.NullString

		dst := []any{&detail.ID, &detail.UserID, &userFullName, &detail.ProjectID, &projectName, &detail.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if userFullName.Valid {
			detail.UserFullName = &userFullName.String
		}
		if projectName.Valid {
			detail.ProjectName = &projectName.String
		}

		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// GetAssignmentDetailsByUser 是单用户变体，按分配时间从新到旧排列
func (r *Repository) GetAssignmentDetailsByUser(userID int64) ([]*domain.AssignmentDetail, error) {
	query := `
		SELECT a.id, a.user_id, u.full_name, a.project_id, p.name, a.created_at
		FROM assignments a
		LEFT JOIN users u ON a.user_id = u.id
		LEFT JOIN projects p ON a.project_id = p.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.AssignmentDetail, 0)
	for rows.Next() {
		detail := &domain.AssignmentDetail{}
		var userFullName, projectName sql.NullString

		dst := []any{&detail.ID, &detail.UserID, &userFullName, &detail.ProjectID, &projectName, &detail.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if userFullName.Valid {
			detail.UserFullName = &userFullName.String
		}
		if projectName.Valid {
			detail.ProjectName = &projectName.String
		}

		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT user_id, project_id, created_at
		FROM assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.Assignment{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&assignment.UserID, &assignment.ProjectID, &assignment.CreatedAt); err != nil {
		return nil, err
	}

	return assignment, nil
}

// DeleteAssignment 整条删除分配记录，分配记录不支持部分更新
func (r *Repository) DeleteAssignment(id int64) error {
	query := `
		DELETE FROM assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
