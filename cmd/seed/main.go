package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

const (
	adminName  = "Administrator"
	adminEmail = "admin@taskboard.local"

	demoName  = "Demo User"
	demoEmail = "demo@taskboard.local"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
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
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	listRepo := repository.NewTaskListRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Roles
	adminRole, err := roleRepo.FindOrCreateByName(ctx, model.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to ensure Admin role: %v", err)
	}
	userRole, err := roleRepo.FindOrCreateByName(ctx, model.RoleUser)
	if err != nil {
		log.Fatalf("Failed to ensure User role: %v", err)
	}

	// Admin account. The password is printed once; change it after login.
	admin, created, err := ensureUser(ctx, userRepo, adminName, adminEmail)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := roleRepo.Grant(ctx, admin.ID, userRole.ID); err != nil {
		log.Fatalf("Failed to grant User role: %v", err)
	}
	if err := roleRepo.Grant(ctx, admin.ID, adminRole.ID); err != nil {
		log.Fatalf("Failed to grant Admin role: %v", err)
	}
	if created {
		log.Printf("Admin account created: %s", adminEmail)
	}

	// Demo user with a sample board
	demo, created, err := ensureUser(ctx, userRepo, demoName, demoEmail)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	if err := roleRepo.Grant(ctx, demo.ID, userRole.ID); err != nil {
		log.Fatalf("Failed to grant User role: %v", err)
	}
	if created {
		if err := seedDemoBoard(ctx, projectRepo, listRepo, taskRepo, demo.ID); err != nil {
			log.Fatalf("Failed to seed demo board: %v", err)
		}
		log.Printf("Demo account created: %s", demoEmail)
	}

	log.Println("Seed completed successfully!")
}

// ensureUser creates the user with a random password if the email is free.
func ensureUser(ctx context.Context, repo repository.UserRepository, name, email string) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	password := uuid.New().String()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	log.Printf("  %s password: %s", email, password)
	return user, true, nil
}

// seedDemoBoard creates one project with its three conventional columns and
// a few tasks, each with a CREATED history row.
func seedDemoBoard(
	ctx context.Context,
	projectRepo repository.ProjectRepository,
	listRepo repository.TaskListRepository,
	taskRepo repository.TaskRepository,
	ownerID uint,
) error {
	project := &model.Project{
		Name:        "Getting started",
		Description: "A sample project showing the kanban board.",
		CreatedBy:   ownerID,
	}
	if err := projectRepo.Create(ctx, project); err != nil {
		return err
	}

	samples := []struct {
		title    string
		status   string
		priority string
	}{
		{"Explore the board", model.StatusPending, "Medium"},
		{"Drag a task to Doing", model.StatusInProgress, "High"},
		{"Read the profile page", model.StatusCompleted, "Low"},
	}

	for _, s := range samples {
		list, err := listRepo.FindOrCreate(ctx, project.ID, service.ListNameForStatus(s.status))
		if err != nil {
			return err
		}
		task := &model.Task{
			ListID:     list.ID,
			Title:      s.title,
			Status:     s.status,
			Priority:   s.priority,
			AssignedTo: ownerID,
		}
		err = taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
			if err := repo.Create(ctx, task); err != nil {
				return err
			}
			return repo.AppendHistory(ctx, &model.TaskHistory{
				TaskID:     task.ID,
				ChangeType: model.ChangeCreated,
				ChangedBy:  ownerID,
			})
		})
		if err != nil {
			return err
		}
	}
	return nil
}
