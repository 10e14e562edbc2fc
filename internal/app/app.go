package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/automation"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/config"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/db"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/gemini"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/prompt"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/repository"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	SessionService   *service.SessionService
	ProjectService   *service.ProjectService
	DocumentService  *service.DocumentService
	AssistantService *service.AssistantService
	Notifier         *automation.Notifier
	PromptGenerator  *prompt.Generator
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

	// Repositories
	sessionRepository := repository.NewSessionRepository(database)
	cacheRepository := repository.NewCacheRepository(database)

	// Remote collaborators
	client := remote.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	authProvider := remote.NewAuthProvider(client, sessionRepository)
	projectAPI := remote.NewProjectAPI(client)

	// Storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	projectService := service.NewProjectService(
		projectAPI,
		cacheRepository,
		cfg.ListLoadTimeout,
		cfg.DetailLoadTimeout,
		cfg.WriteTimeout,
	)
	sessionService := service.NewSessionService(authProvider, cacheRepository, projectService, cfg.SignOutTimeout)
	documentService := service.NewDocumentService(projectService, blobStorage, cfg.S3PresignExpiryPublic)

	model := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	assistantService := service.NewAssistantService(model, projectService)

	notifier := automation.NewNotifier(cfg.WebhookURLs, cfg.WebhookTimeout)
	promptGenerator := prompt.NewGenerator(cfg.ContactPhone, cfg.ContactEmail)

	// Restore any persisted session and begin watching auth state.
	sessionService.Start()

	return &App{
		Cfg:              cfg,
		DB:               database,
		SessionService:   sessionService,
		ProjectService:   projectService,
		DocumentService:  documentService,
		AssistantService: assistantService,
		Notifier:         notifier,
		PromptGenerator:  promptGenerator,
	}, nil
}

func (a *App) Close() error {
	a.SessionService.Stop()
	return db.Close(a.DB)
}
