/*
Package main is the entry point for the Chat App server.

It loads configuration, initializes the global logging system, connects the
database and the optional Redis publisher, constructs the session directory
and the core services, and runs the HTTP server until an interrupt signal
triggers graceful shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatapp/internal/app/account"
	"chatapp/internal/app/chat"
	"chatapp/internal/app/db"
	"chatapp/internal/app/message"
	"chatapp/internal/app/presence"
	"chatapp/internal/app/pubsub"
	"chatapp/internal/app/rename"
	"chatapp/internal/app/session"
	"chatapp/internal/app/user"
	"chatapp/internal/configs"
	"chatapp/internal/handler"
	"chatapp/internal/pkg/logx"
	"chatapp/internal/pkg/mailx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool and migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	users := user.NewStore(pool)
	messages := message.NewStore(pool)

	// Optional fan-out publisher
	var publisher chat.Publisher
	if cfg.RedisAddr != "" {
		redisPublisher := pubsub.NewRedisPublisher(cfg.RedisAddr)
		defer redisPublisher.Close()
		publisher = redisPublisher
		logx.Info("Message publisher enabled", "redis_addr", cfg.RedisAddr)
	}

	// Verification mail
	var mailer mailx.Sender
	if cfg.SMTPHost != "" {
		mailer = mailx.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		mailer = mailx.LogSender{}
	}

	// One session directory per process; a restart invalidates all sessions.
	directory := session.NewDirectory()

	deps := &handler.AppDeps{
		Config:    cfg,
		Directory: directory,
		Accounts:  account.NewService(users, directory, rename.NewPropagator(messages), mailer),
		Chat:      chat.NewService(users, messages, publisher),
		Presence:  presence.NewMachine(users),
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Chat App Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
