// Package http exposes the service over HTTP: route wiring, request
// handlers, and the bearer-token middleware guarding protected routes.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edukit/rollbook/internal/logging"
	"github.com/edukit/rollbook/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	users    *services.UserService
	students *services.StudentService
}

func NewServer(address string, l logging.Logger, us *services.UserService, ss *services.StudentService) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		users:    us,
		students: ss,
	}
}

// Router builds the gin engine with all routes attached. Split out from
// Run so tests can drive the full stack through httptest.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", s.health)
	router.POST("/register", s.register)
	router.POST("/login", s.login)

	protected := router.Group("/students", s.requireAuth())
	protected.POST("", s.createStudent)
	protected.GET("", s.listStudents)
	protected.GET("/stats", s.courseStats)
	protected.GET("/:roll_num", s.getStudent)
	protected.PUT("/:roll_num", s.updateStudent)
	protected.DELETE("/:roll_num", s.deleteStudent)

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// requestLogger logs one line per request with method, path, status and
// duration.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
