package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/skhartaye/SMOKI/internal/config"
	"github.com/skhartaye/SMOKI/internal/logger"
	"github.com/skhartaye/SMOKI/internal/repository/sqlite"
	"github.com/skhartaye/SMOKI/internal/routes"
	"github.com/skhartaye/SMOKI/internal/service/storage"
	"github.com/skhartaye/SMOKI/internal/service/stream"
	"github.com/skhartaye/SMOKI/internal/service/websocket"
)

// App owns every component for the lifetime of the process: constructed once
// at startup, background loops cancelled and state flushed on shutdown.
type App struct {
	config    *config.Config
	logger    *logger.Logger
	db        *sqlite.DB
	frames    *stream.FrameStore
	packager  *stream.Packager
	scheduler *stream.Scheduler
	hub       *websocket.HubService
	captures  *storage.BufferService
	server    *http.Server
	cancel    context.CancelFunc
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	frames := stream.NewFrameStore(cfg.FrameBufferCapacity)
	packager, err := stream.NewPackager(frames, cfg, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create packager: %w", err)
	}

	hub := websocket.NewHubService(log)
	captures := storage.NewBufferService(cfg, log, sqlite.NewCaptureRepository(db))

	return &App{
		config:    cfg,
		logger:    log,
		db:        db,
		frames:    frames,
		packager:  packager,
		scheduler: stream.NewScheduler(packager, log),
		hub:       hub,
		captures:  captures,
	}, nil
}

// Run starts the background loops and serves HTTP until Shutdown is called.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	go a.hub.Run(ctx)
	go a.captures.Run(ctx)
	go a.scheduler.Run(ctx)

	router := routes.SetupRoutes(&routes.Deps{
		Config:        a.config,
		Logger:        a.logger,
		Frames:        a.frames,
		Packager:      a.packager,
		Hub:           a.hub,
		Captures:      a.captures,
		Users:         sqlite.NewUserRepository(a.db),
		Vehicles:      sqlite.NewVehicleRepository(a.db),
		Violations:    sqlite.NewViolationRepository(a.db),
		Notifications: sqlite.NewNotificationRepository(a.db),
	})

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.Port),
		Handler: router,
	}

	a.logger.Info("SMOKI server listening on port %d", a.config.Port)
	a.logger.Info("Segments: %s (duration %ds, max %d)",
		a.config.SegmentDirectory, a.config.SegmentDuration, a.config.MaxSegments)

	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server, cancels the background loops, flushes
// buffered captures, removes live segment artifacts, and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	var err error
	if a.server != nil {
		err = a.server.Shutdown(ctx)
	}

	a.captures.FlushCaptures()
	a.packager.Close()
	if cerr := a.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	a.logger.Info("Server stopped")
	return err
}
