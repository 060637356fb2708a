package tasklist

import (
	"github.com/lborres/tasklist/core"
	"github.com/lborres/tasklist/pkg/crypto"
	"github.com/lborres/tasklist/services"
)

// interfaces
type (
	Storage     = core.Storage
	HTTPAdapter = core.HTTPAdapter
	Notifier    = core.Notifier

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Tasklist      = core.Tasklist
	Config        = core.Config
	SessionConfig = core.SessionConfig
)

type (
	User        = core.User
	Identity    = core.Identity
	Session     = core.Session
	SessionData = core.SessionData
	Task        = core.Task
	Goal        = core.Goal
)

// Constructors & helpers (convenience re-exports)
var (
	NewBcrypt            = crypto.NewBcrypt
	NewArgon2            = crypto.NewArgon2
	DefaultSessionConfig = core.DefaultSessionConfig
)

var (
	ErrInvalidRequestData   = core.ErrInvalidRequestData
	ErrRecordNotFound       = core.ErrRecordNotFound
	ErrInvalidAuthorization = core.ErrInvalidAuthorization
	ErrInvalidSession       = core.ErrInvalidSession
)

var (
	ErrDBAdapterRequired   = core.ErrDBAdapterRequired
	ErrHTTPAdapterRequired = core.ErrHTTPAdapterRequired
)

// New wires the domain services over config.Database and mounts them on
// config.HTTP.
func New(config Config) (*Tasklist, error) {
	if config.Database == nil {
		return nil, ErrDBAdapterRequired
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}

	// Set Defaults

	sessionConfig := DefaultSessionConfig()
	if config.SessionConfig != nil {
		sessionConfig = *config.SessionConfig
		if sessionConfig.TTL <= 0 {
			sessionConfig.TTL = core.DefaultSessionTTL
		}
		if sessionConfig.CookieName == "" {
			sessionConfig.CookieName = core.DefaultCookieName
		}
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewBcrypt(0)
	}

	sessionManager := services.NewSessionManager(sessionConfig, config.Database, config.Clock)

	registry, err := services.NewEndpointRegistry()
	if err != nil {
		return nil, err
	}

	tl := &Tasklist{
		Auth:      services.NewAuthService(config.Database, passwordHasher, sessionManager),
		Tasks:     services.NewTaskService(config.Database, config.Notifier, config.Clock).WithNotifyTimeout(config.NotifyTimeout),
		Goals:     services.NewGoalService(config.Database),
		Endpoints: registry.Endpoints(),
		Session:   sessionConfig,
	}

	if err := config.HTTP.RegisterRoutes(tl); err != nil {
		return nil, err
	}

	return tl, nil
}
