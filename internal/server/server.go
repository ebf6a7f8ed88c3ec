package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/glog"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"sarvasva/internal/auth"
	"sarvasva/internal/config"
	"sarvasva/internal/realtime"
	"sarvasva/internal/realtime/bus"
	repo "sarvasva/internal/repository"
	rtr "sarvasva/internal/router"
	"sarvasva/internal/store"
	"sarvasva/internal/summarizer"
	"sarvasva/internal/uploads"
)

const shutdownTimeout = 10 * time.Second

func Routes(hub *realtime.Hub, b bus.Bus) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.Logger,    // Log API Request Calls
		middleware.Recoverer, // A panicking handler answers 500 instead of killing the server
		auth.GuestCtx(),
	)

	router.Route("/", func(r chi.Router) {
		r.Mount("/", rtr.HealthRoutes())
	})

	router.Route("/api", func(r chi.Router) {
		r.Mount("/auth", rtr.AuthRoutes())
		r.Mount("/courses", rtr.CourseRoutes())
		r.Mount("/videos", rtr.VideoRoutes())
		r.Mount("/credits", rtr.CreditsRoutes())
		r.Mount("/students", rtr.StudentRoutes())
		r.Mount("/documents", rtr.DocumentRoutes())
		r.Mount("/chat", rtr.ChatRoutes(hub, b))
		r.Mount("/assessments", rtr.AssessmentRoutes())
		r.Mount("/live-classes", rtr.LiveClassRoutes())
	})

	return router
}

// Handler wraps the routes in the CORS policy of the configuration.
func Handler(hub *realtime.Hub, b bus.Bus) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: config.Config.AllowedOrigins,
		AllowedHeaders: []string{"Content-Type", auth.GuestIDHeader, auth.GuestNameHeader, auth.AdminKeyHeader},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
	})

	return c.Handler(Routes(hub, b))
}

// NewRepository opens the collection store and upload storage of the configuration.
func NewRepository(cfg *config.ServerConfig) (*repo.JSONRepository, error) {
	s, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	u, err := uploads.New(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	return repo.NewJSONRepository(repo.Options{
		Store:                 s,
		Uploads:               u,
		Summarizer:            summarizer.Stub{},
		CourseCompletionAward: cfg.CourseCompletionAward,
		DefaultGuestID:        cfg.DefaultGuestID,
	}), nil
}

func newBus(cfg *config.ServerConfig, hub *realtime.Hub) bus.Bus {
	if cfg.RedisAddr == "" {
		return bus.NewLocalBus(hub)
	}

	b, err := bus.NewRedisBus(hub, cfg.RedisAddr, cfg.RedisChannel)
	if err != nil {
		glog.Warningf("redis unavailable, chat delivery stays in-process: %v", err)
		return bus.NewLocalBus(hub)
	}
	glog.Infof("✅ Chat messages are shared over redis %s", cfg.RedisAddr)
	return b
}

func Start() {
	if config.Config == nil {
		glog.Fatal("❌ Missing or invalid configuration!")
	}
	cfg := config.Config

	r, err := NewRepository(cfg)
	if err != nil {
		glog.Fatalf("❌ Error creating repository: %v", err)
	}
	repo.Repository = r

	hub := realtime.NewHub()
	b := newBus(cfg, hub)
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", cfg.Port),
		Handler:           Handler(hub, b),
		ReadHeaderTimeout: 10 * time.Second,

		// Chat streams end when the server is asked to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.StartForwarder(gctx)
	})
	g.Go(func() error {
		glog.Infof("Server is listening on port %v", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		glog.Errorf("server stopped: %v", err)
	}
	glog.Flush()
}
