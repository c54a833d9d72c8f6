package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/utils"
)

func (r *Repository) CreateProject(project *domain.Project) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO projects (name, url)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, project.Name, project.URL).Scan(&project.ID, &project.CreatedAt, &project.Version); err != nil {
		return err
	}

	return nil
}

// CheckProjectNameExists 检查项目名是否已存在，项目名不区分大小写，
// 比较前统一用 utils.NormalizeProjectName 归一化
func (r *Repository) CheckProjectNameExists(name string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM projects WHERE LOWER(name) = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, utils.NormalizeProjectName(name)).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

// GetProjectByName 按归一化后的项目名查找项目
func (r *Repository) GetProjectByName(name string) (*domain.Project, error) {
	query := `
		SELECT id, name, url, created_at, version
		FROM projects WHERE LOWER(name) = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	project := &domain.Project{}

	dst := []any{&project.ID, &project.Name, &project.URL, &project.CreatedAt, &project.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, utils.NormalizeProjectName(name)).Scan(dst...); err != nil {
		return nil, err
	}

	return project, nil
}

func (r *Repository) GetProjectByID(id int64) (*domain.Project, error) {
	query := `
		SELECT name, url, created_at, version
		FROM projects WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	project := &domain.Project{
		ID: id,
	}

	dst := []any{&project.Name, &project.URL, &project.CreatedAt, &project.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return project, nil
}

func (r *Repository) GetAllProjects() ([]*domain.Project, error) {
	query := `
		SELECT id, name, url, created_at, version
		FROM projects
		ORDER BY created_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project := &domain.Project{}
		dst := []any{&project.ID, &project.Name, &project.URL, &project.CreatedAt, &project.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdateProject 只会更新项目本身，日报里的项目名快照不会被回溯更新
func (r *Repository) UpdateProject(project *domain.Project) error {
	query := `
		UPDATE projects
		SET
			name = $1,
			url = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{project.Name, project.URL, project.ID, project.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&project.CreatedAt, &project.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteProject(id int64) error {
	query := `
		DELETE FROM projects WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
