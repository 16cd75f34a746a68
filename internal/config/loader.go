package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DisableEnvFile can be passed as LoadOptions.EnvFile to skip the dotenv file.
const DisableEnvFile = "-"

// LoadOptions controls where Load reads settings from.
type LoadOptions struct {
	// ConfigFile is an optional YAML file with flat, case-insensitive keys,
	// e.g. "mcp_port: 9000". Empty means no YAML file.
	ConfigFile string

	// EnvFile is the dotenv file. Empty means DefaultEnvFile; DisableEnvFile
	// skips it.
	EnvFile string

	// Environ returns the process environment as KEY=VALUE pairs. Defaults to os.Environ.
	Environ func() []string
}

type setter func(cfg *Config, value string) error

// fields maps upper-cased keys to the function that validates and stores them.
var fields = map[string]setter{
	KeyHost: func(cfg *Config, v string) error {
		cfg.Host = v
		return nil
	},
	KeyPort: func(cfg *Config, v string) error {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("port must be an integer")
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535")
		}
		cfg.Port = port
		return nil
	},
	KeyTransport: func(cfg *Config, v string) error {
		transport, err := normalizeTransport(v)
		if err != nil {
			return err
		}
		cfg.Transport = transport
		return nil
	},
	KeyPath: func(cfg *Config, v string) error {
		if !strings.HasPrefix(v, "/") {
			v = "/" + v
		}
		cfg.Path = v
		return nil
	},
	KeyLogLevel: func(cfg *Config, v string) error {
		if _, err := logging.ParseLevel(v); err != nil {
			return err
		}
		cfg.LogLevel = strings.ToUpper(v)
		return nil
	},
	KeyDebug: func(cfg *Config, v string) error {
		debug, err := parseBool(v)
		if err != nil {
			return err
		}
		cfg.Debug = debug
		return nil
	},
	KeyLogFile: func(cfg *Config, v string) error {
		cfg.LogFile = v
		return nil
	},
	KeyEnvironment: func(cfg *Config, v string) error {
		cfg.Environment = v
		return nil
	},
	KeyBaseURL: func(cfg *Config, v string) error {
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("base URL must be an absolute http(s) URL")
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		cfg.BaseURL = u.String()
		return nil
	},
	KeyAPIKey: func(cfg *Config, v string) error {
		cfg.APIKey = v
		return nil
	},
	KeyTimeout: func(cfg *Config, v string) error {
		timeout, err := parseTimeout(v)
		if err != nil {
			return err
		}
		cfg.Timeout = timeout
		return nil
	},
}

// Load builds the configuration from built-in defaults, the optional YAML
// file, the dotenv file and the process environment, each overriding the
// previous one. Missing files are skipped; unrecognised keys are ignored.
// A malformed value for a recognised key returns a *LoadError.
func Load(opts LoadOptions) (Config, error) {
	cfg := GetDefaultConfig()

	if opts.ConfigFile != "" {
		values, err := readYAMLFile(opts.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		if err := apply(&cfg, values, SourceYAML, opts.ConfigFile); err != nil {
			return Config{}, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if envFile != DisableEnvFile {
		values, err := readDotenvFile(envFile)
		if err != nil {
			return Config{}, err
		}
		if err := apply(&cfg, values, SourceDotenv, envFile); err != nil {
			return Config{}, err
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	if err := apply(&cfg, parseEnviron(environ()), SourceEnv, ""); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// SetValue validates and stores a single setting given on the command line.
func SetValue(cfg *Config, key, value string) error {
	return apply(cfg, map[string]string{key: value}, SourceFlag, "")
}

// apply stores every recognised, non-empty value. Keys are compared
// upper-cased and applied in sorted order. When one source holds several
// case variants of a key, the upper-case spelling wins, then the lexically
// smallest variant.
func apply(cfg *Config, values map[string]string, source, filePath string) error {
	type candidate struct {
		rawKey string
		value  string
	}
	chosen := make(map[string]candidate, len(values))

	for rawKey, rawValue := range values {
		trimmedKey := strings.TrimSpace(rawKey)
		key := strings.ToUpper(trimmedKey)
		if _, ok := fields[key]; !ok {
			continue
		}
		if strings.TrimSpace(rawValue) == "" {
			continue
		}
		prev, seen := chosen[key]
		if !seen || preferKey(key, trimmedKey, prev.rawKey) {
			chosen[key] = candidate{rawKey: trimmedKey, value: rawValue}
		}
	}

	keys := make([]string, 0, len(chosen))
	for key := range chosen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c := chosen[key]
		if err := fields[key](cfg, strings.TrimSpace(c.value)); err != nil {
			return &LoadError{
				Key:      key,
				Value:    c.value,
				Source:   source,
				FilePath: filePath,
				Message:  err.Error(),
				Err:      err,
			}
		}
	}
	return nil
}

// preferKey reports whether candidate should replace current as the
// spelling of key.
func preferKey(key, candidate, current string) bool {
	if current == key {
		return false
	}
	if candidate == key {
		return true
	}
	return candidate < current
}

func readYAMLFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No settings file found at %s, skipping", path)
			return nil, nil
		}
		return nil, &LoadError{Source: SourceYAML, FilePath: path, Message: "cannot read file", Err: err}
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{
			Source:      SourceYAML,
			FilePath:    path,
			Message:     "malformed YAML",
			Suggestions: []string{"use flat key: value pairs such as 'mcp_port: 8000'"},
			Err:         err,
		}
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case map[string]interface{}, []interface{}:
			if _, known := fields[strings.ToUpper(key)]; known {
				return nil, &LoadError{
					Key:      strings.ToUpper(key),
					Value:    fmt.Sprint(v),
					Source:   SourceYAML,
					FilePath: path,
					Message:  "expected a scalar value",
				}
			}
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	logging.Info("Config", "Loaded settings from %s", path)
	return values, nil
}

func readDotenvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &LoadError{Source: SourceDotenv, FilePath: path, Message: "cannot parse dotenv file", Err: err}
	}
	logging.Debug("Config", "Loaded %d entries from %s", len(values), path)
	return values, nil
}

func parseEnviron(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values
}

func normalizeTransport(v string) (string, error) {
	switch strings.ToLower(v) {
	case "stdio":
		return MCPTransportStdio, nil
	case "http", "streamable-http", "streamable_http", "streamablehttp":
		return MCPTransportStreamableHTTP, nil
	case "sse":
		return MCPTransportSSE, nil
	default:
		return "", fmt.Errorf("transport must be one of stdio, http, streamable-http, sse")
	}
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected a boolean")
	}
}

// maxTimeoutSeconds is the largest timeout a time.Duration can hold.
const maxTimeoutSeconds = float64(math.MaxInt64 / int64(time.Second))

// parseTimeout accepts whole or fractional seconds ("30", "2.5") or a Go
// duration ("45s", "1m").
func parseTimeout(v string) (time.Duration, error) {
	var timeout time.Duration
	if seconds, err := strconv.ParseFloat(v, 64); err == nil {
		if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds > maxTimeoutSeconds {
			return 0, fmt.Errorf("timeout must be a finite number of seconds no larger than %.0f", maxTimeoutSeconds)
		}
		if seconds <= 0 {
			return 0, fmt.Errorf("timeout must be positive")
		}
		timeout = time.Duration(seconds * float64(time.Second))
	} else if d, derr := time.ParseDuration(v); derr == nil {
		timeout = d
	} else {
		return 0, fmt.Errorf("timeout must be a number of seconds or a duration such as 30s")
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive")
	}
	return timeout, nil
}
