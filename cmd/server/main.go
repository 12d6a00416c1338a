package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/prajnahall/studyhall-admin/internal/booking"
	"github.com/prajnahall/studyhall-admin/internal/config" // Internal config loader
	"github.com/prajnahall/studyhall-admin/internal/handler"
	"github.com/prajnahall/studyhall-admin/internal/middleware"
	"github.com/prajnahall/studyhall-admin/internal/queue"
	"github.com/prajnahall/studyhall-admin/internal/repository"
	"github.com/prajnahall/studyhall-admin/internal/router" // Internal router setup
	queue_publisher "github.com/prajnahall/studyhall-admin/internal/service"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env wins

	cfg := config.Load() // Load environment config

	// Document store client and the typed repositories on top of it.
	sc := store.NewClient(cfg.StoreEndpoint, cfg.StoreProject, cfg.StoreAPIKey, cfg.StoreDatabaseID)
	students := repository.NewStudentRepo(sc, cfg.StudentsCol)
	seats := repository.NewSeatRepo(sc, cfg.SeatsCol)
	bookings := repository.NewBookingRepo(sc, cfg.BookingsCol)
	maintenance := repository.NewMaintenanceRepo(sc, cfg.MaintenanceCol)
	operators := repository.NewOperatorRepo(sc, cfg.OperatorsCol)

	// Redis backs refresh tokens, the response cache and the rate limiter.
	// A nil client disables the latter two but auth cannot run without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis is unavailable; refresh tokens need it")
	}
	tokens := repository.NewTokenRepo(rdb)

	// The booking workflow publishes confirmation events to the broker.
	flow := &booking.Workflow{
		Students: students,
		Seats:    seats,
		Bookings: bookings,
		Publish:  queue_publisher.PublishBookingConfirmed,
	}

	// Background consumers reconnect on their own; they only log.
	go func() { _ = queue.StartNotifyConsumer() }()
	go func() { _ = queue.StartBookingConsumer() }()

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, operators, tokens), cfg.JWTSecret)
	router.RegisterDashboard(e, cfg.JWTSecret,
		handler.NewStudentHandler(students, seats, bookings, flow),
		handler.NewSeatHandler(seats, students, flow),
		handler.NewBookingHandler(bookings),
		handler.NewMaintenanceHandler(maintenance),
		handler.NewDashboardHandler(students, bookings, maintenance),
		handler.NewNotifyHandler(students),
	)

	addr := ":" + cfg.Port                                                      // Address string with port
	log.Printf("listening on %s (env=%s hall=%s)", addr, cfg.Env, cfg.HallCode) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
