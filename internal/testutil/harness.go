package testutil

import (
	"net/http"
	"testing"
	"time"

	"houndtrack/internal/auth"
	"houndtrack/internal/config"
	"houndtrack/internal/models"
	"houndtrack/internal/permission"

	"github.com/stretchr/testify/require"
)

// TestConfig returns a config good enough for handler tests: a fixed
// session secret and short-lived sessions.
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.API.Port = "0"
	cfg.Auth = config.AuthConfig{
		SessionSecret:   "test-session-secret",
		SessionDuration: time.Hour,
	}
	cfg.Retention = config.RetentionConfig{ChangeLogDays: 30, Schedule: "0 3 * * *"}
	cfg.RateLimit.Requests = 1000
	cfg.RateLimit.Window = 60
	cfg.RateLimit.Burst = 50
	return cfg
}

// SessionCookieFor mints a valid session cookie for the given user.
func SessionCookieFor(t *testing.T, cfg *config.Config, user models.SessionUser) *http.Cookie {
	t.Helper()
	token, err := auth.NewService(cfg).GenerateToken(user)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token, Path: "/"}
}

// GrantsAll returns a grant set with every registered scope at All.
func GrantsAll() permission.Grants {
	g := permission.NewGrants()
	for k := range g {
		g[k] = permission.All
	}
	return g
}

// GrantsWith returns a grant set at None except the given overrides.
func GrantsWith(overrides map[string]permission.Scope) permission.Grants {
	g := permission.NewGrants()
	for k, v := range overrides {
		g[k] = v
	}
	return g
}
