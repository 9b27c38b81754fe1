package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/category"
	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/credential"
	"github.com/fintrack/fintrack/internal/expense"
	"github.com/fintrack/fintrack/internal/identity"
	"github.com/fintrack/fintrack/internal/income"
	"github.com/fintrack/fintrack/internal/middleware"
	"github.com/fintrack/fintrack/internal/notification"
	"github.com/fintrack/fintrack/internal/savingsgoal"
	"github.com/fintrack/fintrack/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories, in-memory unless Postgres is configured.
	var identityRepo identity.Repository
	var categoryRepo category.Repository
	var expenseRepo expense.Repository
	var incomeRepo income.Repository
	var goalRepo savingsgoal.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		categoryRepo = category.NewPostgresRepository(d.DB)
		expenseRepo = expense.NewPostgresRepository(d.DB)
		incomeRepo = income.NewPostgresRepository(d.DB)
		goalRepo = savingsgoal.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		categoryRepo = category.NewMemoryRepository()
		expenseRepo = expense.NewMemoryRepository()
		incomeRepo = income.NewMemoryRepository()
		goalRepo = savingsgoal.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	hasher := credential.NewHasher(d.Cfg.HashParams, d.Cfg.PasswordMinLength)
	identitySvc := identity.NewService(identityRepo, hasher)
	tokenSvc := token.NewService(token.Config{
		Secret:     []byte(d.Cfg.SecretKey),
		Issuer:     d.Cfg.TokenIssuer,
		Audience:   d.Cfg.TokenAudience,
		AccessTTL:  d.Cfg.AccessTTL,
		RefreshTTL: d.Cfg.RefreshTTL,
	})
	authSvc := auth.NewService(identitySvc, tokenSvc)
	authHandler := auth.NewHandler(identitySvc, authSvc, notifier)
	resolver := auth.NewResolver(tokenSvc, identityRepo)

	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)
	expenseHandler := expense.NewHandler(expense.NewService(expenseRepo, categorySvc))
	incomeHandler := income.NewHandler(income.NewService(incomeRepo, categorySvc))
	goalHandler := savingsgoal.NewHandler(savingsgoal.NewService(goalRepo, notifier))

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	protected := api.Group("", middleware.Session(resolver))
	RegisterUserRoutes(protected, identitySvc)
	RegisterCategoryRoutes(protected, categoryHandler)
	RegisterExpenseRoutes(protected, expenseHandler)
	RegisterIncomeRoutes(protected, incomeHandler)
	RegisterGoalRoutes(protected, goalHandler)

	return nil
}
