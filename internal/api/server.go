// Package api exposes the interview controller over HTTP.
package api

import (
	"context"
	"strconv"
	"time"

	"github.com/abhisek/interviewd/internal/interview"
	"github.com/abhisek/interviewd/internal/metrics"
	"github.com/abhisek/interviewd/internal/resume"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ResumeRegistry is a resume directory that also accepts new profiles.
type ResumeRegistry interface {
	resume.Directory
	Create(ctx context.Context, p resume.Profile) (*resume.Profile, error)
}

// Options configures the HTTP server.
type Options struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
	CORSOrigins     string

	// Ready reports whether dependencies are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

// Server wires the controller to fiber routes.
type Server struct {
	app     *fiber.App
	ctrl    *interview.Controller
	resumes resume.Directory
	opts    Options
	log     *zap.Logger
}

// New builds the fiber app and registers every route.
func New(ctrl *interview.Controller, resumes resume.Directory, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	s := &Server{
		ctrl:    ctrl,
		resumes: resumes,
		opts:    opts,
		log:     log,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "interviewd",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "${status} ${method} ${path} ${latency}\n",
		Output: zap.NewStdLog(log.Named("http")).Writer(),
	}))
	s.app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSOrigins}))
	s.app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: s.ready,
	}))
	s.app.Use(countRequests)

	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api", rateLimiter(opts.RateLimitMax, opts.RateLimitWindow))
	s.registerRoutes(api)
	return s
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("http server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) ready(c *fiber.Ctx) bool {
	if s.opts.Ready == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := s.opts.Ready(ctx); err != nil {
		s.log.Warn("readiness probe failed", zap.Error(err))
		return false
	}
	return true
}

func rateLimiter(limit int, window time.Duration) fiber.Handler {
	if limit == 0 {
		limit = 60
	}
	if window == 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(Envelope{
				Success: false,
				Message: "Too many requests",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

func countRequests(c *fiber.Ctx) error {
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}
	metrics.HTTPRequests.WithLabelValues(c.Route().Path, strconv.Itoa(status)).Inc()
	return err
}
