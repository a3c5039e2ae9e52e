package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/camrado/pritok/internal/config"
	"github.com/camrado/pritok/internal/db"
	"github.com/camrado/pritok/internal/repository"
	"github.com/camrado/pritok/internal/service"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	UserService         *service.UserService
	EmailService        *service.EmailService
	CategoryService     *service.CategoryService
	PurchaseService     *service.PurchaseService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	cascadeRepository := repository.NewCascadeRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	purchaseRepository := repository.NewPurchaseRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.SupportEmail,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	verificationService := service.NewVerificationService(userRepository, emailService)
	authService := service.NewAuthService(
		userRepository,
		sessionRepository,
		verificationService,
		cfg.JWTSecret,
	)
	userService := service.NewUserService(userRepository, cascadeRepository, emailService)
	categoryService := service.NewCategoryService(categoryRepository)
	purchaseService := service.NewPurchaseService(purchaseRepository)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		VerificationService: verificationService,
		UserService:         userService,
		EmailService:        emailService,
		CategoryService:     categoryService,
		PurchaseService:     purchaseService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
