package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/config"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-reporter/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 提交日报时需要知道有哪些人，所有人都可以获取用户列表
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/password", h.UpdateUserPassword)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Get("/projects", h.GetUserAssignedProjects)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Get("/reports", h.GetUserReports)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Post("/", h.CreateProject)
			r.Get("/", h.GetAllProjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.projectInfo)
				r.Get("/", h.GetProjectInfo)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/", h.UpdateProject)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Delete("/", h.DeleteProject)
				r.Get("/reports", h.GetProjectReports)
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleBlackCore}))
			r.Post("/", h.AssignProjects)
			r.With(h.assignmentInfo).Delete("/{id}", h.DeleteAssignment)
		})

		r.With(h.myInfo).Get("/my-projects", h.GetMyProjects)

		r.Route("/reports", func(r chi.Router) {
			r.With(h.myInfo, h.preventLeavedAssistant).Post("/", h.SubmitReport)
			r.With(h.myInfo).Get("/my", h.GetMyReports)
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Get("/", h.GetAllReports)
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Get("/today", h.GetTodayReports)
		})
	})
}
