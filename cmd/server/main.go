// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/pasapalabra/pasapalabra-live/internal/auth"
	"github.com/pasapalabra/pasapalabra-live/internal/cache"
	"github.com/pasapalabra/pasapalabra-live/internal/config"
	"github.com/pasapalabra/pasapalabra-live/internal/database"
	"github.com/pasapalabra/pasapalabra-live/internal/handlers"
	"github.com/pasapalabra/pasapalabra-live/internal/media"
	"github.com/pasapalabra/pasapalabra-live/internal/middleware"
	"github.com/pasapalabra/pasapalabra-live/internal/signaling"
)

func main() {
	cfg := config.Load()
	auth.Init(cfg.SessionTTL)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := database.Connect(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("database: %v", err)
	}

	srv := signaling.NewServer(logger)

	if err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
		logger.Warnf("redis unavailable, game history disabled: %v", err)
	} else {
		queue := cfg.HistorianQueue
		srv.OnGameAction = func(roomID, userID, action string, data json.RawMessage) {
			rec := cache.RoomActionRecord{
				RoomID:    roomID,
				UserID:    userID,
				Action:    action,
				Data:      data,
				Timestamp: time.Now().UnixMilli(),
			}
			// Enqueue off the signaling path; the caller holds the server lock.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := cache.PublishRoomAction(ctx, queue, rec); err != nil {
					logger.Warnf("failed to enqueue room action: %v", err)
				}
			}()
		}
	}

	issuer := media.NewTokenIssuer(cfg.MediaAPIKey, cfg.MediaAPISecret)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.Heartbeat("/ping"))
	r.Use(middleware.LogMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// user endpoints
	r.Post("/users/create", handlers.CreateUserHandler)
	r.Post("/users/login", handlers.LoginHandler)

	// game content and catalog
	r.Get("/questions/{letter}", handlers.QuestionHandler)
	r.Get("/skins", handlers.SkinsHandler)
	r.Get("/camera-filters", handlers.CameraFiltersHandler)
	r.Get("/vip-levels/{level}", handlers.VIPLevelHandler)
	r.Get("/users/{userId}/skins", handlers.UserSkinsHandler)
	r.Get("/users/{userId}/camera-filters", handlers.UserCameraFiltersHandler)
	r.Post("/users/{userId}/progress", handlers.AddProgressHandler)

	// media service collaboration
	r.Get("/media/token", handlers.MediaTokenHandler(issuer))
	r.Get("/media/config", handlers.MediaConfigHandler(cfg))

	// room coordination
	r.Get("/rooms", handlers.ListRoomsHandler(srv))
	r.Get("/ws", handlers.SignalingWSHandler(logger, srv))

	r.Get("/health", handlers.HealthHandler(issuer))

	logger.Infof("Running on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
