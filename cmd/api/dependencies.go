package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/roammate-api/internal/domain/export"
	"github.com/FACorreiaa/roammate-api/internal/domain/planner"
	"github.com/FACorreiaa/roammate-api/internal/domain/session"
	"github.com/FACorreiaa/roammate-api/internal/domain/session/handler"
	"github.com/FACorreiaa/roammate-api/internal/llm"
	"github.com/FACorreiaa/roammate-api/pkg/config"
	"github.com/FACorreiaa/roammate-api/pkg/interceptors"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	Redis  *redis.Client

	// Stores
	SessionStore session.Store
	CookieStore  sessions.Store

	// Services
	LLMClient      llm.Client
	PlannerService planner.Service
	SessionManager *session.Manager

	// Handlers
	PlannerHandler *handler.Handler
	ExportHandler  http.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStores(ctx); err != nil {
		return nil, fmt.Errorf("failed to init stores: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initStores sets up the session store and the signed cookie store
func (d *Dependencies) initStores(ctx context.Context) error {
	switch d.Config.Session.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     d.Config.Redis.Addr,
			Password: d.Config.Redis.Password,
			DB:       d.Config.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to connect to redis at %s: %w", d.Config.Redis.Addr, err)
		}
		d.Redis = client
		d.SessionStore = session.NewRedisStore(client, d.Config.Session.TTL)
		d.Logger.Info("redis session store connected", slog.String("addr", d.Config.Redis.Addr))
	default:
		d.SessionStore = session.NewMemoryStore(d.Config.Session.TTL)
		d.Logger.Info("in-memory session store initialized", slog.Duration("ttl", d.Config.Session.TTL))
	}

	secret := []byte(d.Config.Session.Secret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		d.Logger.Warn("SESSION_SECRET is empty; using a random key, sessions will not survive a restart")
	}
	d.CookieStore = interceptors.NewCookieStore(secret, d.Config.Session.TTL)
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	if d.Config.LLM.APIKey == "" {
		d.Logger.Warn("GEMINI_API_KEY is empty; every generation request will fail until it is set")
	}

	d.LLMClient = llm.NewGeminiClient(d.Config.LLM.APIKey, d.Logger)
	d.PlannerService = planner.NewServiceImpl(d.LLMClient, planner.Models{
		Itinerary: d.Config.LLM.ItineraryModel,
		Places:    d.Config.LLM.PlacesModel,
		Chat:      d.Config.LLM.ChatModel,
	}, d.Config.LLM.Temperature, d.Logger)
	d.SessionManager = session.NewManager(d.SessionStore, d.PlannerService, d.Logger)

	d.Logger.Info("services initialized",
		slog.String("itinerary_model", d.Config.LLM.ItineraryModel),
		slog.String("places_model", d.Config.LLM.PlacesModel),
		slog.String("chat_model", d.Config.LLM.ChatModel))
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.PlannerHandler = handler.NewHandler(d.SessionManager, d.Logger)
	d.ExportHandler = export.NewHandler(d.SessionManager, d.Logger)
	d.Logger.Info("handlers initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("failed to close redis client", slog.Any("error", err))
		}
	}
	d.Logger.Info("cleanup completed")
}
