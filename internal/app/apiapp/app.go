package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zen-techno/zen/internal/config"
	pgrepo "github.com/zen-techno/zen/internal/repo/postgres"
	redrepo "github.com/zen-techno/zen/internal/repo/redis"
	authsvc "github.com/zen-techno/zen/internal/services/auth"
	categoriessvc "github.com/zen-techno/zen/internal/services/categories"
	expensessvc "github.com/zen-techno/zen/internal/services/expenses"
	ratesvc "github.com/zen-techno/zen/internal/services/rate"
	userssvc "github.com/zen-techno/zen/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	if pool != nil {
		if err := pgrepo.Migrate(ctx, pool, pgrepo.SchemaOptions{
			CategoryDeletePolicy: cfg.Postgres.CategoryDeletePolicy,
		}); err != nil {
			log.Warn("schema migration failed, continuing in degraded mode", zap.Error(err))
			pool.Close()
			pool = nil
		}
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	tokenRepo := redrepo.NewTokenRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)

	factory := pgrepo.NewFactory(pool)
	userService := userssvc.NewService(factory)
	categoryService := categoriessvc.NewService(factory)
	expenseService := expensessvc.NewService(factory)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL, cfg.Auth.RefreshTTL)
	loginLimiter := ratesvc.NewLimiter(rateRepo, cfg.Auth.LoginPerMinute)
	authService := authsvc.NewService(userService, factory, jwtManager, tokenRepo, loginLimiter)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:     authService,
		UserService:     userService,
		CategoryService: categoryService,
		ExpenseService:  expenseService,
		Logger:          log,
		Config:          cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
