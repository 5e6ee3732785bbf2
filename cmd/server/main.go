package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mkaufhold/headspa-booking/internal/availability"
	"github.com/mkaufhold/headspa-booking/internal/blocklist"
	"github.com/mkaufhold/headspa-booking/internal/booking"
	"github.com/mkaufhold/headspa-booking/internal/config"
	"github.com/mkaufhold/headspa-booking/internal/database"
	"github.com/mkaufhold/headspa-booking/internal/event"
	"github.com/mkaufhold/headspa-booking/internal/handler"
	"github.com/mkaufhold/headspa-booking/internal/middleware"
	"github.com/mkaufhold/headspa-booking/internal/queue"
	"github.com/mkaufhold/headspa-booking/internal/repository"
	"github.com/mkaufhold/headspa-booking/internal/router"
	queue_publisher "github.com/mkaufhold/headspa-booking/internal/service"
)

func main() {
	// Load a local .env when present.  In production configuration comes
	// from the environment and the file simply does not exist.
	_ = godotenv.Load()

	cfg := config.Load()           // Load environment config
	schedule := config.LoadSchedule() // Slot grid, business days, launch and horizon
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unavailable
	cache := availability.NewCache(rdb, cacheCfg)
	bus := event.NewBus()

	reservations := repository.NewReservationRepo(db)
	blocks := repository.NewBlockRepo(db)

	availSvc := availability.New(reservations, blocks, cache, schedule)
	bookSvc := booking.New(reservations, blocks, cache, bus, schedule)
	blockSvc := blocklist.New(blocks, bus, schedule)

	bookingHandler := handler.NewBookingHandler(availSvc, bookSvc)
	adminHandler := handler.NewAdminHandler(reservations, blocks, blockSvc, bus)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterPublic(e, bookingHandler, middleware.NewTokenBucket(rlCfg, rdb))
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Consume booking.created messages and append them to the audit log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer: stopped: %v", err)
		}
	}()

	// Bridge in-process events to their side effects: booking.created
	// messages go to the queue for the notification pipeline, and every
	// availability change drops the cached slot answers.
	events, cancel := bus.Subscribe(64)
	defer cancel()
	go func() {
		for ev := range events {
			switch ev := ev.(type) {
			case event.BookingCreated:
				err := queue_publisher.PublishBookingCreated(context.Background(), queue.BookingCreatedEvent{
					ReservationID: ev.ReservationID,
					CustomerName:  ev.Name,
					CustomerEmail: ev.Email,
					Service:       ev.Service,
					Date:          ev.Date,
					Time:          ev.Time,
					CreatedAt:     time.Now().UTC().Format(time.RFC3339),
				})
				if err != nil {
					log.Printf("event-bridge: publish booking.created failed: %v", err)
				}
			case event.BlocksChanged:
				cache.Flush(context.Background())
			}
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
