package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/admission"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/auth"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/medicine"
	"github.com/hms/hms/internal/domain/patient"
	platformauth "github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/janitor"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/notification"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital Management API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HMS API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			users := auth.NewUserRepoPG(pool)
			if _, err := users.GetByEmail(ctx, email); err == nil {
				fmt.Printf("User %s already exists, nothing to do.\n", email)
				return nil
			} else if !errors.Is(err, auth.ErrUserNotFound) {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fullName := "Administrator"
			u := &auth.User{
				Email:        &email,
				PasswordHash: hash,
				FullName:     &fullName,
				Role:         auth.RoleAdmin,
				IsVerified:   true,
				IsActive:     true,
			}
			if err := users.Create(ctx, u); err != nil {
				return err
			}

			fmt.Printf("Created admin user %s (id %d).\n", email, u.ID)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Admin email address")
	cmd.Flags().String("password", "", "Admin password")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Redis, used by the rate limiter. The limiter fails open so an
	// unreachable Redis degrades to unlimited rather than an outage.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	// OTP delivery
	var emailSender notification.EmailSender
	if cfg.SMTPHost != "" {
		emailSender = notification.NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		emailSender = notification.NewDevEmailSender(logger)
	}
	smsSender := notification.NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
	dispatcher := notification.NewDispatcher(emailSender, smsSender, cfg.NotifyRetryDelay(), cfg.OTPExpiry(), logger)

	// Auth domain
	userRepo := auth.NewUserRepoPG(pool)
	otpRepo := auth.NewOTPRepoPG(pool)
	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.AccessTTL(), cfg.RefreshTTL())
	authSvc := auth.NewService(userRepo, otpRepo, issuer, dispatcher, cfg.OTPLength, cfg.OTPExpiry(), logger)
	authHandler := auth.NewHandler(authSvc, logger)

	// OTP table cleanup
	cleaner := janitor.New(cfg.OTPCleanupSchedule, cfg.OTPRetention(), otpRepo, logger)
	if err := cleaner.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start otp cleanup job")
	}
	defer cleaner.Stop()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.Sanitize())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout()))

	// Bearer token parsing. Requests without a token pass through
	// unauthenticated; the per-route guards decide what is required.
	authmw := platformauth.NewMiddleware([]byte(cfg.JWTSecret), authSvc)
	e.Use(authmw.Authenticate())

	// Health checks
	e.GET("/health", db.HealthHandler(pool))
	e.GET("/ready", db.ReadyHandler(pool))

	apiV1 := e.Group("/api/v1")

	// Rate limiting on the auth endpoints; OTP issuance is the abuse target.
	rlCfg := middleware.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitPerMinute,
		Burst:             cfg.RateLimitBurst,
	}
	if rlCfg.RequestsPerMinute <= 0 {
		rlCfg = middleware.DefaultRateLimitConfig()
	}
	authGroup := apiV1.Group("/auth", middleware.RateLimit(rdb, rlCfg, logger))
	authHandler.RegisterRoutes(authGroup)

	// Entity CRUD
	patient.NewHandler(patient.NewService(patient.NewRepository(pool))).RegisterRoutes(apiV1)
	doctor.NewHandler(doctor.NewService(doctor.NewRepository(pool))).RegisterRoutes(apiV1)
	department.NewHandler(department.NewService(department.NewRepository(pool))).RegisterRoutes(apiV1)
	appointment.NewHandler(appointment.NewService(appointment.NewRepository(pool))).RegisterRoutes(apiV1)
	admission.NewHandler(admission.NewService(admission.NewRepository(pool))).RegisterRoutes(apiV1)
	medicine.NewHandler(medicine.NewService(medicine.NewRepository(pool))).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := cfg.Addr()
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
