package credentials

import (
	"os"
	"strings"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/internal/config"
)

// EnvVar is checked on every resolution so that the key can be rotated
// without restarting the process.
const EnvVar = "COURT_LISTENER_API_KEY"

// AuthorizationHeader is the single header required by the CourtListener API.
const AuthorizationHeader = "Authorization"

// Source resolves the API credential. Implementations must be cheap and safe
// to call concurrently and repeatedly; an absent credential is reported by
// ok == false and is not an error.
type Source interface {
	Resolve() (token string, ok bool)
}

// EnvSource reads the live environment first and falls back to the value
// captured when the configuration was loaded.
type EnvSource struct {
	// Fallback is the credential captured at load time, possibly empty.
	Fallback string
	// Lookup reads an environment variable. Defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

// NewEnvSource creates a Source for the given configuration.
func NewEnvSource(cfg config.Config) *EnvSource {
	return &EnvSource{Fallback: cfg.APIKey}
}

// Resolve implements Source.
func (s *EnvSource) Resolve() (string, bool) {
	lookup := s.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvVar); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	if v := strings.TrimSpace(s.Fallback); v != "" {
		return v, true
	}
	return "", false
}

// Static is a fixed credential, mostly useful in tests and embedding.
type Static string

// Resolve implements Source.
func (s Static) Resolve() (string, bool) {
	return string(s), s != ""
}

// BuildAuthHeaders resolves the credential and returns the authorization
// header mapping. It fails with an authentication_config_error when no
// credential is available.
func BuildAuthHeaders(src Source) (map[string]string, error) {
	var (
		token string
		ok    bool
	)
	if src != nil {
		token, ok = src.Resolve()
	}
	if !ok {
		return nil, api.NewAuthenticationConfigError(EnvVar + " not found in environment variables")
	}
	return map[string]string{AuthorizationHeader: "Token " + token}, nil
}
