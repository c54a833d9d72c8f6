package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/config"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/repository"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/seed"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机项目, 3: 插入随机分配记录, 4: 插入随机日报, 5: 插入真实数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的项目数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				project := utils.GenerateRandomProject()
				if err := repo.CreateProject(project); err != nil {
					slog.Error("无法插入项目", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入项目成功", slog.Int("count", n-cnt))
		}
	case 3:
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取用户列表", slog.String("error", err.Error()))
			return
		}
		projects, err := repo.GetAllProjects()
		if err != nil {
			slog.Error("无法获取项目列表", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 || len(projects) == 0 {
			slog.Error("数据库中没有用户或项目，请先插入用户和项目")
			return
		}

		cnt := 0
		for _, user := range users {
			// 每个用户随机分配 1 到 3 个项目，项目之间允许重复
			projectIDs := make([]int64, rand.Intn(3)+1)
			for i := range projectIDs {
				projectIDs[i] = projects[rand.Intn(len(projects))].ID
			}

			if err := repo.CreateAssignments(user.ID, projectIDs); err != nil {
				slog.Error("无法插入分配记录", slog.String("error", err.Error()))
				continue
			}
			cnt += len(projectIDs)
		}

		slog.Info("插入分配记录成功", slog.Int("count", cnt))
	case 4:
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取用户列表", slog.String("error", err.Error()))
			return
		}
		projects, err := repo.GetAllProjects()
		if err != nil {
			slog.Error("无法获取项目列表", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 || len(projects) == 0 {
			slog.Error("数据库中没有用户或项目，请先插入用户和项目")
			return
		}

		cnt := 0
		for _, user := range users {
			project := projects[rand.Intn(len(projects))]
			report := utils.GenerateRandomReport(user, project)

			if err := repo.CreateReport(report); err != nil {
				slog.Error("无法插入日报", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("插入日报成功", slog.Int("count", cnt))
	case 5:
		seed.SeedRealData(repo)
	default:
		slog.Error("不支持的操作", slog.Int("op", op))
	}
}
