package api

import (
	"time"

	"github.com/icplearn/backend/internal/ai"
	"github.com/icplearn/backend/internal/arena"
	"github.com/icplearn/backend/internal/assessment"
	"github.com/icplearn/backend/internal/config"
	"github.com/icplearn/backend/internal/course"
	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/events"
	"github.com/icplearn/backend/internal/nft"
	"github.com/icplearn/backend/internal/reward"
	"github.com/icplearn/backend/internal/skill"
	"github.com/icplearn/backend/internal/stake"
	"github.com/icplearn/backend/internal/store"
	"github.com/icplearn/backend/internal/user"
)

// App holds all application dependencies.
type App struct {
	Config *config.Config
	Store  store.KV

	Users       *user.Service
	Courses     *course.Service
	Skills      *skill.Service
	Assessments *assessment.Service
	Stakes      *stake.Service
	NFTs        *nft.Service
	Rewards     *reward.Service
	Arena       *arena.Service
	AI          *ai.Service
}

// AppConfig holds dependencies for application initialization. Clock and
// Publisher may be nil; a nil publisher disables event emission.
type AppConfig struct {
	Config    *config.Config
	Store     store.KV
	Clock     domain.Clock
	Publisher events.Publisher
}

// NewApp wires the services onto a shared record store.
func NewApp(cfg AppConfig) *App {
	clock := cfg.Clock
	if clock == nil {
		clock = domain.SystemClock{}
	}

	app := &App{
		Config: cfg.Config,
		Store:  cfg.Store,
	}

	app.Users = user.NewService(cfg.Store, clock, cfg.Publisher)
	app.Courses = course.NewService(cfg.Store, clock)
	app.Skills = skill.NewService(cfg.Store, clock)
	app.Assessments = assessment.NewService(cfg.Store, clock)
	app.Stakes = stake.NewService(cfg.Store, clock, cfg.Publisher)
	app.NFTs = nft.NewService(cfg.Store, clock, cfg.Publisher)
	app.Rewards = reward.NewService(cfg.Store, app.Users, clock, cfg.Publisher)
	app.Arena = arena.NewService(cfg.Store, clock, cfg.Publisher)
	app.AI = ai.NewService(cfg.Store, newCascade(cfg.Config), clock)

	return app
}

// newCascade builds the provider chain from configuration. Providers with
// no endpoint or credentials configured are left out of the chain.
func newCascade(cfg *config.Config) *ai.Cascade {
	timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second

	var canister ai.Provider
	if cfg.CanisterURL != "" {
		canister = ai.NewCanisterProvider(ai.CanisterConfig{
			BaseURL: cfg.CanisterURL,
			Timeout: timeout,
		})
	}

	var external ai.Provider
	if cfg.ExternalAPIKey != "" {
		external = ai.NewExternalProvider(ai.ExternalConfig{
			APIKey:  cfg.ExternalAPIKey,
			BaseURL: cfg.ExternalAPIURL,
			Model:   cfg.ExternalAPIModel,
			Timeout: timeout,
		})
	}

	return ai.NewCascade(canister, external, ai.CascadeConfig{
		MaxRetries:      cfg.AIMaxRetries,
		FallbackEnabled: cfg.FallbackEnabled,
	})
}
