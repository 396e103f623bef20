// Package server initializes and runs the application: it builds the
// repository manager, the auth primitives and the services from config,
// handles graceful shutdown on OS signals, and starts the HTTP server.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/edukit/rollbook/internal/logging"
	"github.com/edukit/rollbook/internal/server/auth"
	"github.com/edukit/rollbook/internal/server/config"
	"github.com/edukit/rollbook/internal/server/http"
	"github.com/edukit/rollbook/internal/server/repositories/repomanager"
	"github.com/edukit/rollbook/internal/server/services"
)

const dbInitTimeout = 30 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	repos          repomanager.RepositoryManager
	userService    *services.UserService
	studentService *services.StudentService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewZerologLogger(os.Stdout, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), dbInitTimeout)
	defer cancel()

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec, err := auth.NewTokenCodec([]byte(cfg.SecretKey), cfg.Algorithm, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	us := services.NewUserService(rm.Users(), auth.NewHasher(cfg.BcryptCost), codec)
	ss := services.NewStudentService(rm.Students())

	return &App{
		config:         cfg,
		logger:         logger,
		repos:          rm,
		userService:    us,
		studentService: ss,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := http.NewServer(app.config.Address, app.logger, app.userService, app.studentService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
