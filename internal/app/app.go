package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sarangchurch/quiettime/internal/config"
	"github.com/sarangchurch/quiettime/internal/db"
	"github.com/sarangchurch/quiettime/internal/devotion"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/service"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Clock               *devotion.Clock
	AuthService         *service.AuthService
	UserService         *service.UserService
	EmailService        *service.EmailService
	CheckinService      *service.CheckinService
	DevotionPlanService *service.DevotionPlanService
	BibleService        *service.BibleService
	ReadingService      *service.ReadingService
	GuideService        *service.GuideService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	clock, err := devotion.NewClock(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	checkinRepository := repository.NewCheckinRepository(database)
	devotionPlanRepository := repository.NewDevotionPlanRepository(database)
	bibleProgressRepository := repository.NewBibleProgressRepository(database)
	readingRepository := repository.NewReadingRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository, profileRepository, authService, emailService)
	checkinService := service.NewCheckinService(checkinRepository)
	devotionPlanService := service.NewDevotionPlanService(devotionPlanRepository)
	bibleService := service.NewBibleService(bibleProgressRepository, profileRepository)
	readingService := service.NewReadingService(readingRepository)

	guideService := service.NewGuideService(cfg.ContentPath)
	err = guideService.LoadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load guide content: %v", err)
	}

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Clock:               clock,
		AuthService:         authService,
		UserService:         userService,
		EmailService:        emailService,
		CheckinService:      checkinService,
		DevotionPlanService: devotionPlanService,
		BibleService:        bibleService,
		ReadingService:      readingService,
		GuideService:        guideService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
