package main

import (
    "context"
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "campus-table/internal/config"
    "campus-table/internal/database"
    "campus-table/internal/handler"
    "campus-table/internal/middleware"
    "campus-table/internal/queue"
    "campus-table/internal/repository"
    "campus-table/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    if err := godotenv.Load(); err == nil {
        log.Println("loaded configuration from .env")
    }
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    if err := database.Migrate(context.Background(), db); err != nil {
        log.Fatalf("database migration failed: %v", err)
    }

    // Redis backs rate limiting and the browse response cache. A nil
    // client turns both middlewares into pass-throughs.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }

    // Repositories.
    restaurantRepo := repository.NewRestaurantRepo(db)
    seatRepo := repository.NewSeatRepo(db)
    occupiedRepo := repository.NewOccupiedSeatRepo(db)
    bookingRepo := repository.NewBookingRepo(db)
    userRepo := repository.NewUserRepo(db)
    guestRepo := repository.NewGuestRepo(db)
    institutionRepo := repository.NewInstitutionRepo(db)
    menuRepo := repository.NewMenuRepo(db)
    orderRepo := repository.NewOrderRepo(db)
    reviewRepo := repository.NewReviewRepo(db)
    statsRepo := repository.NewStatsRepo(db)
    availability := repository.NewAvailabilityBuilder(seatRepo, occupiedRepo, bookingRepo)

    // Handlers.
    authHandler := handler.NewAuthHandler(cfg, userRepo, guestRepo)
    browseHandler := handler.NewBrowseHandler(institutionRepo, restaurantRepo, menuRepo, availability)
    bookingHandler := handler.NewBookingHandler(restaurantRepo, bookingRepo, userRepo, guestRepo)
    paymentHandler := handler.NewPaymentHandler()
    orderHandler := handler.NewOrderHandler(orderRepo, menuRepo, userRepo, guestRepo, restaurantRepo)
    reviewHandler := handler.NewReviewHandler(orderRepo, reviewRepo, restaurantRepo)
    userHandler := handler.NewUserHandler(userRepo, orderRepo, bookingRepo, reviewRepo)
    adminHandler := handler.NewAdminHandler(statsRepo)

    e := echo.New()
    e.HideBanner = true

    // Rate limiting applies to every route; the response cache only to
    // the public browse group.
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler)
    router.RegisterBrowse(e, browseHandler, cacheMW)
    router.RegisterCustomer(e, bookingHandler, paymentHandler, orderHandler, reviewHandler, userHandler)
    router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

    // Background consumer that writes the activity log from queue
    // events. Runs its own reconnect loop for the broker.
    go func() {
        if err := queue.StartActivityConsumer(); err != nil {
            log.Printf("activity consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
