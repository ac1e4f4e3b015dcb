package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/forgo/directory/api/internal/config"
	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/handler"
	"github.com/forgo/directory/api/internal/middleware"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	var db database.Database
	switch cfg.Database.Engine {
	case config.EngineMemory:
		db = database.NewMemory()
	default:
		db = database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
	}

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() { _ = db.Close() }()

	logger.Info().
		Str("engine", cfg.Database.Engine).
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Database).
		Msg("connected to database")

	store := dao.NewStore(db)

	healthHandler := handler.NewHealthHandler(db)
	accountHandler := handler.NewAccountHandler(store)
	roleHandler := handler.NewRoleHandler(store)
	permissionHandler := handler.NewPermissionHandler(store)
	partyHandler := handler.NewPartyHandler(store)
	addressHandler := handler.NewAddressHandler(store)
	contactHandler := handler.NewContactHandler(store)

	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Account endpoints
	mux.HandleFunc("POST /v1/accounts", accountHandler.Create)
	mux.HandleFunc("GET /v1/accounts", accountHandler.List)
	mux.HandleFunc("GET /v1/accounts/{id}", accountHandler.Get)
	mux.HandleFunc("PUT /v1/accounts/{id}", accountHandler.Update)
	mux.HandleFunc("DELETE /v1/accounts/{id}", accountHandler.Delete)
	mux.HandleFunc("PUT /v1/accounts/{id}/password", accountHandler.ChangePassword)
	mux.HandleFunc("GET /v1/accounts/{id}/roles", accountHandler.ListRoles)
	mux.HandleFunc("POST /v1/accounts/{id}/roles", accountHandler.AssignRoles)
	mux.HandleFunc("PUT /v1/accounts/{id}/roles", accountHandler.ReplaceRoles)
	mux.HandleFunc("DELETE /v1/accounts/{id}/roles/{roleId}", accountHandler.WithdrawRole)
	mux.HandleFunc("GET /v1/accounts/{id}/permissions", accountHandler.ListPermissions)

	// Role endpoints, including permission membership
	mux.HandleFunc("POST /v1/roles", roleHandler.Create)
	mux.HandleFunc("GET /v1/roles", roleHandler.List)
	mux.HandleFunc("GET /v1/roles/{id}", roleHandler.Get)
	mux.HandleFunc("PUT /v1/roles/{id}", roleHandler.Update)
	mux.HandleFunc("DELETE /v1/roles/{id}", roleHandler.Delete)
	mux.HandleFunc("GET /v1/roles/{id}/permissions", roleHandler.ListPermissions)
	mux.HandleFunc("POST /v1/roles/{id}/permissions", roleHandler.GrantPermissions)
	mux.HandleFunc("PUT /v1/roles/{id}/permissions", roleHandler.ReplacePermissions)
	mux.HandleFunc("DELETE /v1/roles/{id}/permissions/{permissionId}", roleHandler.RevokePermission)

	// Permission endpoints
	mux.HandleFunc("POST /v1/permissions", permissionHandler.Create)
	mux.HandleFunc("GET /v1/permissions", permissionHandler.List)
	mux.HandleFunc("GET /v1/permissions/{id}", permissionHandler.Get)
	mux.HandleFunc("PUT /v1/permissions/{id}", permissionHandler.Update)
	mux.HandleFunc("DELETE /v1/permissions/{id}", permissionHandler.Delete)

	// Party endpoints and party-scoped sub-collections
	mux.HandleFunc("POST /v1/parties", partyHandler.Create)
	mux.HandleFunc("GET /v1/parties", partyHandler.List)
	mux.HandleFunc("GET /v1/parties/{id}", partyHandler.Get)
	mux.HandleFunc("PUT /v1/parties/{id}", partyHandler.Update)
	mux.HandleFunc("DELETE /v1/parties/{id}", partyHandler.Delete)
	mux.HandleFunc("GET /v1/parties/{id}/addresses", partyHandler.ListAddresses)
	mux.HandleFunc("GET /v1/parties/{id}/contact-methods", partyHandler.ListContactMethods)
	mux.HandleFunc("GET /v1/parties/{id}/accounts", partyHandler.ListAccounts)

	// Address endpoints
	mux.HandleFunc("POST /v1/addresses", addressHandler.Create)
	mux.HandleFunc("GET /v1/addresses", addressHandler.List)
	mux.HandleFunc("GET /v1/addresses/{id}", addressHandler.Get)
	mux.HandleFunc("PUT /v1/addresses/{id}", addressHandler.Update)
	mux.HandleFunc("DELETE /v1/addresses/{id}", addressHandler.Delete)

	// Contact method endpoints
	mux.HandleFunc("POST /v1/contact-methods", contactHandler.Create)
	mux.HandleFunc("GET /v1/contact-methods", contactHandler.List)
	mux.HandleFunc("GET /v1/contact-methods/{id}", contactHandler.Get)
	mux.HandleFunc("PUT /v1/contact-methods/{id}", contactHandler.Update)
	mux.HandleFunc("DELETE /v1/contact-methods/{id}", contactHandler.Delete)

	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Server.Port).
			Str("env", cfg.Server.Env).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
