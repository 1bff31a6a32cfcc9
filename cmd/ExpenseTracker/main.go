package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sebuszqo/ExpenseTracker/internal/auth"
	"github.com/sebuszqo/ExpenseTracker/internal/config"
	database "github.com/sebuszqo/ExpenseTracker/internal/db"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router         *http.ServeMux
	dbService      *database.DBService
	authHandler    *auth.Handler
	userHandler    *user.Handler
	expenseHandler *interfaces.ExpenseHandler
	authService    auth.Service
}

func NewServer(dbService *database.DBService, authHandler *auth.Handler, authService auth.Service, userHandler *user.Handler, expenseHandler *interfaces.ExpenseHandler) *Server {
	return &Server{
		dbService:      dbService,
		authHandler:    authHandler,
		userHandler:    userHandler,
		expenseHandler: expenseHandler,
		authService:    authService,
		router:         http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	mainRouter := http.NewServeMux()
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public auth routes
	mainRouter.Handle("POST /api/auth/register", http.HandlerFunc(s.userHandler.HandleRegister))
	mainRouter.Handle("POST /api/auth/token", http.HandlerFunc(s.authHandler.HandleObtainToken))
	mainRouter.Handle("POST /api/auth/token/refresh", http.HandlerFunc(s.authHandler.HandleRefreshToken))
	mainRouter.Handle("POST /api/auth/token/verify", http.HandlerFunc(s.authHandler.HandleVerifyToken))
	mainRouter.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	mainRouter.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// EXPENSES API (owner-scoped, JWT protected)
	mainRouter.Handle("GET /api/expenses", protect(http.HandlerFunc(s.expenseHandler.GetUserExpenses)))
	mainRouter.Handle("POST /api/expenses", protect(http.HandlerFunc(s.expenseHandler.CreateExpense)))

	mainRouter.Handle("GET /api/expenses/{expenseID}",
		protect(s.expenseHandler.ValidateExpensePathParamsMiddleware(http.HandlerFunc(s.expenseHandler.GetExpense), "expenseID")))

	mainRouter.Handle("PATCH /api/expenses/{expenseID}",
		protect(s.expenseHandler.ValidateExpensePathParamsMiddleware(http.HandlerFunc(s.expenseHandler.UpdateExpense), "expenseID")))

	mainRouter.Handle("DELETE /api/expenses/{expenseID}",
		protect(s.expenseHandler.ValidateExpensePathParamsMiddleware(http.HandlerFunc(s.expenseHandler.DeleteExpense), "expenseID")))

	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	location, err := cfg.Server.Location()
	if err != nil {
		log.Fatalf("Invalid TIME_ZONE configuration: %v", err)
	}

	dbService, err := database.NewDBService(cfg.Database)
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB); err != nil {
		log.Fatalf("Could not run database migrations: %v", err)
	}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret)
	revocationRepo := auth.NewRevocationRepository(dbService.DB)
	authService := auth.NewAuthService(userService, jwtManager, revocationRepo, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authHandler := auth.NewHandler(authService)

	expenseRepo := infrastructure.NewPostgresExpenseRepository(dbService.DB)
	expenseService := application.NewExpenseService(expenseRepo, func() time.Time {
		return time.Now().In(location)
	})
	expenseHandler := interfaces.NewExpenseHandler(expenseService, respondJSON, respondError)

	server := NewServer(dbService, authHandler, authService, userHandler, expenseHandler)
	server.RegisterRoutes()

	if err := StartRevokedTokenCleanup(authService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s...", addr)
	if err := http.ListenAndServe(addr, loggingMiddleware(server.router)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartRevokedTokenCleanup purges revocation rows whose tokens have
// expired on their own.
func StartRevokedTokenCleanup(authService auth.Service) error {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		purged, err := authService.PurgeExpiredRevokedTokens()
		if err != nil {
			log.Printf("Error purging expired revoked tokens: %v", err)
		} else if purged > 0 {
			log.Printf("Purged %d expired revoked tokens.", purged)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
