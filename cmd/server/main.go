package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/config"
	"github.com/sizzer/salon-booking/internal/database"
	"github.com/sizzer/salon-booking/internal/handler"
	"github.com/sizzer/salon-booking/internal/metrics"
	"github.com/sizzer/salon-booking/internal/middleware"
	"github.com/sizzer/salon-booking/internal/queue"
	"github.com/sizzer/salon-booking/internal/repository"
	"github.com/sizzer/salon-booking/internal/router"
	"github.com/sizzer/salon-booking/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	salons := repository.NewSalonRepo(db)
	services := repository.NewServiceRepo(db)
	staff := repository.NewStaffRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	reviews := repository.NewReviewRepo(db)
	payments := repository.NewPaymentRepo(db)
	stats := repository.NewStatsRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	userH := handler.NewUserHandler(users)
	salonH := handler.NewSalonHandler(salons)
	serviceH := handler.NewServiceHandler(cfg, salons, services)
	staffH := handler.NewStaffHandler(salons, staff)
	appointmentH := handler.NewAppointmentHandler(appointments)
	reviewH := handler.NewReviewHandler(reviews)
	paymentH := handler.NewPaymentHandler(payments)
	adminH := handler.NewAdminHandler(users, salons, appointments, stats)
	dashboardH := handler.NewOwnerDashboardHandler(salons, stats)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.CORS(cfg.AllowedOrigins))
	e.Use(metrics.Middleware())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH)
	router.RegisterPublic(e, cacheMW, salonH, serviceH, staffH, reviewH)
	router.RegisterUser(e, cfg.JWTSecret, userH, appointmentH, reviewH, paymentH)
	router.RegisterOwner(e, cfg.JWTSecret, salonH, serviceH, staffH, appointmentH, dashboardH)
	router.RegisterAdmin(e, cfg.JWTSecret, adminH, paymentH)

	go queue.StartConfirmedConsumer()

	refresher := service.NewRatingRefresher(salons, os.Getenv("RATING_REFRESH_SPEC"))
	if err := refresher.Start(); err != nil {
		log.Error().Err(err).Msg("rating refresher failed to start")
	}
	defer refresher.Stop()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("salon booking API listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
