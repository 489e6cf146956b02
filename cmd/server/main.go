package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/miniapps-backend/internal/auth"
	"github.com/segyhp/miniapps-backend/internal/config"
	"github.com/segyhp/miniapps-backend/internal/handler"
	"github.com/segyhp/miniapps-backend/internal/repository"
	"github.com/segyhp/miniapps-backend/internal/service"
	"github.com/segyhp/miniapps-backend/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	repaymentRepo := repository.NewRepaymentRepository(db)

	// Initialize services
	taskService := service.NewTaskService(taskRepo)
	loanService := service.NewLoanService(loanRepo, repaymentRepo, userRepo, redisClient, cfg)

	// Initialize handlers
	taskHandler := handler.NewTaskHandler(taskService)
	loanHandler := handler.NewLoanHandler(loanService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	// Setup routes
	router := setupRoutes(taskHandler, loanHandler, healthHandler, tokenManager, userRepo)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	taskHandler *handler.TaskHandler,
	loanHandler *handler.LoanHandler,
	healthHandler *handler.HealthHandler,
	tokenManager *auth.TokenManager,
	userRepo repository.UserRepository,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)

	// Health checks stay outside authentication
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes, all behind the bearer-token guard
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware(tokenManager, userRepo))

	api.HandleFunc("/tasks", taskHandler.CreateTask).Methods("POST")
	api.HandleFunc("/tasks", taskHandler.ListTasks).Methods("GET")
	api.HandleFunc("/tasks/category/{categoryId}", taskHandler.ListByCategory).Methods("GET")
	api.HandleFunc("/tasks/{taskId}", taskHandler.ViewTask).Methods("GET")
	api.HandleFunc("/tasks/{taskId}", taskHandler.EditTask).Methods("PATCH")
	api.HandleFunc("/tasks/{taskId}", taskHandler.MarkCompleted).Methods("POST")
	api.HandleFunc("/tasks/{taskId}", taskHandler.DeleteTask).Methods("DELETE")

	api.HandleFunc("/loans", loanHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans/approve/{loanId}", loanHandler.ApproveLoan).Methods("POST")
	api.HandleFunc("/loans/view/{loanId}", loanHandler.ViewLoan).Methods("GET")
	api.HandleFunc("/loans/repayment/{repaymentId}", loanHandler.RecordRepayment).Methods("POST")
	api.HandleFunc("/loans/repayment/{repaymentId}", loanHandler.ViewRepayment).Methods("GET")
	api.HandleFunc("/loans/viewLoans", loanHandler.ListLoans).Methods("GET")
	api.HandleFunc("/loans/viewUnapprovedLoans", loanHandler.ListUnapprovedLoans).Methods("GET")
	api.HandleFunc("/loans/viewloansOfAUser/{userId}", loanHandler.ListLoansOfUser).Methods("GET")

	return router
}
