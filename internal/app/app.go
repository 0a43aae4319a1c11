package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/paramparahq/parampara/internal/config"
	"github.com/paramparahq/parampara/internal/db"
	"github.com/paramparahq/parampara/internal/repository"
	"github.com/paramparahq/parampara/internal/service"
	"github.com/paramparahq/parampara/internal/storage"
	"github.com/paramparahq/parampara/internal/transcribe"
	"github.com/paramparahq/parampara/internal/translate"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	UserRepository    repository.UserRepository
	AuthService       *service.AuthService
	LocationService   *service.LocationService
	IngestService     *service.IngestService
	SubmissionService *service.SubmissionService
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
	userRepository := repository.NewUserRepository(database)
	locationRepository := repository.NewLocationRepository(database)
	submissionRepository := repository.NewSubmissionRepository(database)

	// Storage
	store, err := newStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Transcription: Whisper primary, network speech API fallback. Either
	// backend is optional; with neither configured, audio submissions are
	// stored without a transcript.
	var primary, fallback transcribe.Backend
	if cfg.OpenAIAPIKey != "" {
		primary = transcribe.NewWhisper(cfg.OpenAIAPIKey, cfg.WhisperModel)
	}
	if cfg.SpeechAPIURL != "" {
		fallback = transcribe.NewSpeechAPI(cfg.SpeechAPIURL)
	}
	var transcriber service.Transcriber
	if primary != nil || fallback != nil {
		transcriber = transcribe.NewService(primary, fallback, cfg.TranscribeTimeout)
	}

	// Translation (optional)
	var translator service.Translator
	if cfg.TranslateAPIURL != "" {
		translator = translate.NewClient(cfg.TranslateAPIURL, cfg.TranslateTarget, cfg.TranslateTimeout)
	}

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry, cfg.IsProduction())
	locationService := service.NewLocationService(locationRepository)
	ingestService := service.NewIngestService(submissionRepository, locationRepository, store, transcriber, translator, cfg)
	submissionService := service.NewSubmissionService(submissionRepository)

	return &App{
		Cfg:               cfg,
		DB:                database,
		UserRepository:    userRepository,
		AuthService:       authService,
		LocationService:   locationService,
		IngestService:     ingestService,
		SubmissionService: submissionService,
	}, nil
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Store(storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			MaxSize:   cfg.MaxUploadSize,
		})
	case "local":
		return storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadSize)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
