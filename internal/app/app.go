package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"taskify/internal/auth"
	"taskify/internal/config"
	"taskify/internal/handlers"
	"taskify/internal/logger"
	"taskify/internal/middleware"
	"taskify/internal/service"
	"taskify/internal/worker"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	server    *http.Server
	handler   http.Handler
	repos     *repositories
	sweeper   *worker.SweepWorker
	shutdowns []func(context.Context) // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(context.Context), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func(context.Context) {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	location, err := a.config.Location()
	if err != nil {
		return a.fail(err)
	}

	repos, err := openRepositories(ctx, a.config)
	if err != nil {
		return a.fail(fmt.Errorf("инициализация хранилища: %w", err))
	}
	a.repos = repos
	a.shutdowns = append(a.shutdowns, func(ctx context.Context) {
		if err := repos.close(ctx); err != nil {
			logger.Error("App: ошибка закрытия хранилища", err)
		}
	})

	tokens := auth.NewTokenManager(a.config.JWTSecret(), a.config.Auth.TokenTTL)
	hasher := auth.NewHasher(a.config.Auth.BcryptCost)

	taskService := service.NewTaskService(repos.tasks, repos.kind)
	notificationService := service.NewNotificationService(repos.tasks, location)
	topicService := service.NewTopicService(repos.topics)
	userService := service.NewUserService(repos.users, hasher, tokens)

	limiter, err := a.buildLimiter()
	if err != nil {
		return a.fail(err)
	}

	router := newRouter(routerDeps{
		tasks:          handlers.NewTaskHandler(&taskService),
		topics:         handlers.NewTopicHandler(&topicService, a.config.Attachments.MaxSizeBytes),
		users:          handlers.NewUserHandler(&userService),
		notifications:  handlers.NewNotificationHandler(&notificationService),
		tokens:         tokens,
		limiter:        limiter,
		allowedOrigins: a.config.Server.AllowedOrigins,
		requestTimeout: a.config.Server.RequestTimeout,
		maxBodyBytes:   a.config.Server.MaxBodyBytes,
	})

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	a.handler = otelhttp.NewHandler(router, handlers.ServiceName)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.handler,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	logger.Info("App: инициализация завершена",
		zap.String("repository", string(repos.kind)),
		zap.String("addr", a.server.Addr),
		zap.String("time_zone", location.String()))

	return a, nil
}

func (a *App) fail(err error) (*App, error) {
	a.Close()
	return nil, err
}

// buildLimiter выбирает Redis при заданном URL, иначе окна в памяти с фоновой очисткой
func (a *App) buildLimiter() (middleware.Limiter, error) {
	rl := a.config.RateLimit
	if !rl.Enabled {
		return nil, nil
	}

	if a.config.Redis.URL != "" {
		opts, err := redis.ParseURL(a.config.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("разбор redis.url: %w", err)
		}
		client := redis.NewClient(opts)
		a.shutdowns = append(a.shutdowns, func(context.Context) {
			if err := client.Close(); err != nil {
				logger.Error("App: ошибка закрытия redis", err)
			}
		})
		logger.Info("App: лимит запросов хранится в redis", zap.String("addr", opts.Addr))
		return middleware.NewRedisLimiter(client, rl.RequestsPerMinute, time.Minute), nil
	}

	limiter := middleware.NewMemoryLimiter(rl.RequestsPerMinute, time.Minute)
	interval := rl.SweepInterval
	a.sweeper = worker.NewSweepWorker("ratelimit", limiter, &interval)
	return limiter, nil
}

// Handler - корневой обработчик, используется в тестах без сети
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер и закрывает ресурсы
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	if a.sweeper != nil {
		g.Go(func() error {
			a.sweeper.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("App: остановка сервера")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Close()
	return err
}

// Close выполняет функции остановки в обратном порядке
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i](ctx)
	}
	a.shutdowns = nil
}
