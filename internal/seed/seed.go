package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/repository"
)

// SeedRealData 从 CSV 导入真实的成员名单和项目分配。
// 表头格式：NetID,姓名,邮箱,角色,项目，其中项目列是用逗号分隔的项目名。
func SeedRealData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/members.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	requiredHeaders := []string{"NetID", "姓名", "邮箱", "角色", "项目"}
	for _, required := range requiredHeaders {
		found := false
		for _, header := range headers {
			if header == required {
				found = true
				break
			}
		}
		if !found {
			slog.Error("缺少表头列", "header", required)
			return
		}
	}

	// 读取数据
	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = value
		}
		records = append(records, record)
	}

	// 插入成员、项目以及分配记录
	for _, record := range records {
		netID := record["NetID"]
		if netID == "" {
			slog.Error("没有找到NetID", "record", record)
			continue
		}

		// 先尝试获取成员
		user, err := r.GetUserByUsername(netID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				// 表示该成员不在数据库中，需要新建并插入
				user = &domain.User{
					Username:     netID,
					PasswordHash: "$2a$10$aUTaWl3vmXuQFocBkb9Qx.YJPAzNoaAcj2VC5tI45l1Roh24meCgO", // ecnc@test8403
					FullName:     record["姓名"],
					Email:        record["邮箱"],
					Role:         domain.Role(record["角色"]),
				}

				if err := r.CreateUser(user); err != nil {
					slog.Error("插入成员失败", "error", err)
					continue
				}
			default:
				slog.Error("获取成员失败", "error", err)
				continue
			}
		}

		// 获取或创建项目，并收集本行要分配的项目 ID
		projectIDs := make([]int64, 0)
		for _, projectName := range strings.Split(record["项目"], ",") {
			projectName = strings.TrimSpace(projectName)
			if projectName == "" {
				continue
			}

			project, err := r.GetProjectByName(projectName)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					project = &domain.Project{Name: projectName}
					if err := r.CreateProject(project); err != nil {
						slog.Error("插入项目失败", "error", err)
						continue
					}
				default:
					slog.Error("获取项目失败", "error", err)
					continue
				}
			}

			projectIDs = append(projectIDs, project.ID)
		}

		if len(projectIDs) == 0 {
			continue
		}

		if err := r.CreateAssignments(user.ID, projectIDs); err != nil {
			slog.Error("插入分配记录失败", "error", err)
			continue
		}
	}

	slog.Info("插入数据完成")
}
