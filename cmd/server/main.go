package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/router"
	"taskboard/internal/service"
	"taskboard/internal/storage"
)

// @title Taskboard API
// @version 1.0
// @description Multi-tenant task management API with projects, kanban boards, comments and cookie-session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.TaskComment{},
			&model.TaskHistory{},
			&model.Task{},
			&model.TaskList{},
			&model.Project{},
			&model.UserRole{},
			&model.Role{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Project{},
		&model.TaskList{},
		&model.Task{},
		&model.TaskHistory{},
		&model.TaskComment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploads, err := storage.NewUploads(cfg.UploadDir)
	if err != nil {
		log.Fatalf("uploads init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	listRepo := repository.NewTaskListRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	historyRepo := repository.NewTaskHistoryRepository(gormDB)
	commentRepo := repository.NewTaskCommentRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, roleRepo, jwtService, cacheClient)
	projectService := service.NewProjectService(projectRepo, listRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, listRepo, commentRepo, cacheClient)
	profileService := service.NewProfileService(userRepo, projectRepo, taskRepo, historyRepo, uploads, cacheClient)
	adminService := service.NewAdminService(userRepo, roleRepo, projectRepo, taskRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	projectHandler := handler.NewProjectHandler(projectService, taskService)
	taskHandler := handler.NewTaskHandler(taskService)
	profileHandler := handler.NewProfileHandler(profileService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		projectHandler,
		taskHandler,
		profileHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
