package core

import (
	"time"

	"github.com/lborres/tasklist/pkg/crypto"
)

const (
	DefaultSessionTTL = 30 * time.Minute
	DefaultCookieName = "SessionID"
)

type SessionConfig struct {
	TTL time.Duration

	CookieName   string
	SecureCookie bool
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TTL:        DefaultSessionTTL,
		CookieName: DefaultCookieName,
	}
}

type Config struct {
	Database Storage

	HTTP HTTPAdapter

	// Optional config
	SessionConfig  *SessionConfig
	PasswordHasher crypto.PasswordHandler
	Notifier       Notifier
	NotifyTimeout  time.Duration
	Clock          Clock
}

type Tasklist struct {
	Auth  AuthHandler
	Tasks TaskHandler
	Goals GoalHandler

	Endpoints []*Endpoint
	Session   SessionConfig
}
