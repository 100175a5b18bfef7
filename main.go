package main

import (
	"database/sql"
	"log"

	"catalog-service/internal/config"
	"catalog-service/internal/handler"
	"catalog-service/internal/logger"
	"catalog-service/internal/repository"
	"catalog-service/internal/repository/memory"
	"catalog-service/internal/repository/postgres"
	"catalog-service/internal/router"
	"catalog-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New()

	// Repositories: Postgres when DATABASE_URL is set, in-memory otherwise.
	var userRepo repository.UserRepository
	var categoryRepo repository.CategoryRepository
	var itemRepo repository.ItemRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		userRepo = postgres.NewPostgresUserRepository(db)
		categoryRepo = postgres.NewPostgresCategoryRepository(db)
		itemRepo = postgres.NewPostgresItemRepository(db)

		appLogger.Info("using postgres repositories")
	} else {
		memItems := memory.NewInMemoryItemRepository()
		userRepo = memory.NewInMemoryUserRepository()
		categoryRepo = memory.NewInMemoryCategoryRepository(memItems)
		itemRepo = memItems

		appLogger.Info("using in-memory repositories")
	}

	// Services
	authService := service.NewAuthService(userRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, userRepo, appLogger)
	itemService := service.NewItemService(itemRepo, categoryRepo, appLogger)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(appLogger)

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	authHandler := handler.NewAuthHandler(authService, cfg)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	itemHandler := handler.NewItemHandler(itemService)

	router.SetupRoutes(e, authHandler, categoryHandler, itemHandler)

	appLogger.Info("starting server", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("server stopped", "error", err)
	}
}
