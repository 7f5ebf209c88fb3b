package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tasklet/core/internal/adapters/repository"
	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/infrastructure/config"
	"github.com/tasklet/core/internal/infrastructure/logger"
	"github.com/tasklet/core/internal/infrastructure/server"
	"github.com/tasklet/core/internal/infrastructure/store"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Tasklet API server",
		Long:  "Start the Tasklet API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write a demo user into the store file",
		Long:  "Create the user store file with a demo account (demo@tasklet.dev / demo1234) and a sample task",
		Run: func(cmd *cobra.Command, args []string) {
			seedStore()
		},
	}
}

// NewUserCommand creates the user management command. There is no HTTP
// registration endpoint; accounts are created here.
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and manage users in the store file",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			if email == "" || password == "" {
				log.Fatal("Email and password are required")
			}

			createUser(email, password, name)
		},
	}

	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("name", "", "User display name")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Tasklet version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Tasklet Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	userStore := store.New(cfg.Store.Path, cfg.Store.LockTimeout)

	srv, err := server.New(cfg, userStore, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create server", "error", err)
	}

	// Start server in a goroutine
	go func() {
		if err := srv.Start(cfg.Server.Address()); err != nil {
			appLogger.Info("Server stopped", "error", err)
		}
	}()

	appLogger.Info("Server started",
		"address", cfg.Server.Address(),
		"environment", cfg.App.Environment,
		"store", cfg.Store.Path,
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func seedStore() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	userStore := store.New(cfg.Store.Path, cfg.Store.LockTimeout)

	demo := entities.User{
		ID:       uuid.NewString(),
		Email:    "demo@tasklet.dev",
		Password: "demo1234",
		Name:     "Demo User",
		Tasks: []entities.Task{
			{
				ID:    uuid.NewString(),
				Title: "Try out Tasklet",
				SubTasks: []entities.SubTask{
					{ID: uuid.NewString(), Title: "Log in", Description: "Use the demo credentials", Completed: true},
					{ID: uuid.NewString(), Title: "Add a subtask", Description: "Edit this task and add one", Completed: false},
				},
				Percentage: 50,
				Date:       time.Now().Format("2006-01-02"),
				Time:       time.Now().Format("15:04"),
			},
		},
	}

	err = userStore.Update(context.Background(), func(users []entities.User) ([]entities.User, error) {
		if len(users) > 0 {
			return nil, fmt.Errorf("store file %s already has %d user(s); refusing to overwrite", cfg.Store.Path, len(users))
		}
		return []entities.User{demo}, nil
	})
	if err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	fmt.Printf("Seeded %s with demo user %s\n", cfg.Store.Path, demo.Email)
}

func createUser(email, password, name string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	userStore := store.New(cfg.Store.Path, cfg.Store.LockTimeout)
	userRepo := repository.NewUserRepository(userStore)

	user := &entities.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: password,
		Name:     name,
		Tasks:    []entities.Task{},
	}

	if err := userRepo.Create(context.Background(), user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created user %s (%s)\n", email, user.ID)
}
