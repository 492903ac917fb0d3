package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/presidentialapts/reservation-api/internal/availability"
	"github.com/presidentialapts/reservation-api/internal/config"
	"github.com/presidentialapts/reservation-api/internal/database"
	"github.com/presidentialapts/reservation-api/internal/handler"
	"github.com/presidentialapts/reservation-api/internal/mailer"
	"github.com/presidentialapts/reservation-api/internal/middleware"
	"github.com/presidentialapts/reservation-api/internal/queue"
	"github.com/presidentialapts/reservation-api/internal/repository"
	"github.com/presidentialapts/reservation-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  Both
	// degrade to pass-throughs when it is unavailable.
	rdb := config.NewRedisClient()
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	reservations := repository.NewReservationRepo(db)
	apartments := repository.NewApartmentRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	checker := availability.NewChecker(reservations)
	notifier := mailer.NewNotifier(
		mailer.NewSendGridSender(cfg.SendGridKey, cfg.FromName, cfg.FromEmail),
		cfg.AdminEmail,
		cfg.PublicBaseURL,
	)

	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	router.RegisterRoutes(e)
	router.RegisterBooking(e, handler.NewReservationHandler(reservations, checker, notifier), limitMW)
	router.RegisterBrowse(e, handler.NewApartmentHandler(apartments), cacheMW)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAdminReservations(e, handler.NewAdminReservationHandler(reservations, cfg.StrictTransitions), cfg.JWTSecret)
	router.RegisterAdminApartments(e, handler.NewAdminApartmentHandler(apartments), cfg.JWTSecret)

	// Background audit trail for new bookings.  The consumer keeps
	// reconnecting on its own, so a broker outage never blocks startup.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation-consumer: stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
