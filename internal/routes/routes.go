package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skhartaye/SMOKI/internal/config"
	"github.com/skhartaye/SMOKI/internal/handler"
	"github.com/skhartaye/SMOKI/internal/logger"
	"github.com/skhartaye/SMOKI/internal/middleware"
	"github.com/skhartaye/SMOKI/internal/repository"
	"github.com/skhartaye/SMOKI/internal/service/storage"
	"github.com/skhartaye/SMOKI/internal/service/stream"
	"github.com/skhartaye/SMOKI/internal/service/websocket"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	Frames        *stream.FrameStore
	Packager      *stream.Packager
	Hub           *websocket.HubService
	Captures      *storage.BufferService
	Users         repository.UserRepository
	Vehicles      repository.VehicleRepository
	Violations    repository.ViolationRepository
	Notifications repository.NotificationRepository
}

// SetupRoutes registers all HTTP routes. The stream endpoints are deliberately
// unauthenticated; the edge device pushes frames without credentials and the
// players cannot attach headers.
func SetupRoutes(d *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger(d.Logger))

	r.Route("/api/stream", func(r chi.Router) {
		r.Post("/frame", handler.IngestFrameHandler(d.Frames, d.Hub, d.Captures, d.Logger))
		r.Get("/latest.jpg", handler.LatestFrameHandler(d.Frames))
		r.Get("/stream.mjpeg", handler.MJPEGStreamHandler(d.Frames, d.Config, d.Logger))
		r.Get("/playlist.m3u8", handler.PlaylistHandler(d.Packager, d.Logger))
		r.Get("/segment_{index}.ts", handler.SegmentHandler(d.Packager))
		r.Get("/status", handler.StatusHandler(d.Frames, d.Packager, d.Config))
		r.Get("/live", handler.ViewWebsocketHandler(d.Hub, d.Logger))
	})

	r.Get("/api/streams/camera/webrtc", handler.SignalingProxyHandler(d.Config, d.Logger))

	r.Post("/api/auth/login", handler.LoginHandler(d.Users, d.Config, d.Logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(d.Config))
		r.Get("/api/auth/me", handler.MeHandler())
		r.Route("/api/vehicles", func(r chi.Router) {
			r.Post("/detect", handler.DetectVehicleHandler(d.Vehicles, d.Violations, d.Notifications, d.Logger))
			r.Post("/violations", handler.CreateViolationHandler(d.Violations, d.Notifications, d.Logger))
			r.Get("/violations/recent", handler.RecentViolationsHandler(d.Violations, d.Logger))
			r.Get("/ranking", handler.VehicleRankingHandler(d.Vehicles, d.Logger))
			r.Get("/notifications/unread", handler.UnreadNotificationsHandler(d.Notifications, d.Logger))
			r.Post("/notifications/{id}/read", handler.MarkNotificationReadHandler(d.Notifications, d.Logger))
		})
	})

	r.Get("/logs", handler.ShowLogsHandler(d.Logger))
	r.Post("/logs/clear", handler.ClearLogsHandler(d.Logger))

	return r
}
