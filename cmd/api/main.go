package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/freelancelocal/freelancelocal-be/internal/config"
	"github.com/freelancelocal/freelancelocal-be/internal/db"
	"github.com/freelancelocal/freelancelocal-be/internal/handlers"
	"github.com/freelancelocal/freelancelocal-be/internal/middleware"
	"github.com/freelancelocal/freelancelocal-be/internal/models"
	"github.com/freelancelocal/freelancelocal-be/internal/realtime"
	"github.com/freelancelocal/freelancelocal-be/internal/services/geocode"
	"github.com/freelancelocal/freelancelocal-be/internal/services/rating"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	hub := realtime.NewHub()
	go realtime.RunNotifier(context.Background(), rdb, hub)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Service{},
		&models.Message{},
		&models.Favorite{},
		&models.Rating{},
	); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}

	geoSvc := geocode.NewGeocodeService(cfg.GeocodeBaseURL)
	ratingSvc := rating.NewRatingService(gdb)

	healthH := handlers.NewHealthHandler(gdb, rdb)
	accountH := handlers.NewAccountHandler(gdb, geoSvc)
	serviceH := handlers.NewServiceHandler(gdb)
	feedH := handlers.NewFeedHandler(gdb)
	favoritesH := handlers.NewFavoritesHandler(gdb)
	profileH := handlers.NewProfileHandler(gdb, ratingSvc)
	chatH := handlers.NewChatHandler(gdb, hub, rdb, cfg.JWTSecret)

	api := app.Group("/api")

	// public
	api.Get("/health", healthH.Check)
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	// authenticated but not terms-gated: session resolution and the
	// acceptance endpoint itself must stay reachable
	session := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)
	session.Get("/auth/session", authH.Session)
	session.Post("/account/terms", accountH.AcceptTerms)

	// everything else waits for the one-time terms acceptance
	protected := session.Group("/", middleware.RequireTermsAccepted(gdb))

	protected.Get("/account", accountH.Get)
	protected.Patch("/account", accountH.UpdateProfile)
	protected.Patch("/account/location", accountH.UpdateLocation)
	protected.Get("/account/services", serviceH.ListMine)

	protected.Post("/services", serviceH.Create)
	protected.Delete("/services/:id", serviceH.Delete)

	protected.Get("/feed", feedH.Get)
	protected.Post("/feed/swipe", feedH.Swipe)
	protected.Get("/favorites", favoritesH.List)

	protected.Get("/profiles/:id", profileH.Get)
	protected.Get("/profiles/:id/can-rate", profileH.CanRate)
	protected.Post("/profiles/:id/ratings", profileH.SubmitRating)

	chat := protected.Group("/chat")
	chat.Get("/conversations", chatH.GetConversations)
	chat.Get("/messages", chatH.GetMessages)
	chat.Post("/messages", chatH.SendMessage)

	// WebSocket endpoint (no cookie middleware, authenticated via token query param)
	app.Get("/ws/chat", websocket.New(chatH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
