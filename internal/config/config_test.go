package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helper function tests
// ---------------------------------------------------------------------------

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string // nil = don't set; pointer to distinguish "" from unset
		fallback string
		want     string
	}{
		{name: "returns fallback when unset", key: "LEADAI_TEST_GETENV_UNSET", setVal: nil, fallback: "default", want: "default"},
		{name: "returns env value when set", key: "LEADAI_TEST_GETENV_SET", setVal: strPtr("custom"), fallback: "default", want: "custom"},
		{name: "returns fallback when empty string", key: "LEADAI_TEST_GETENV_EMPTY", setVal: strPtr(""), fallback: "default", want: "default"},
		{name: "preserves whitespace", key: "LEADAI_TEST_GETENV_WS", setVal: strPtr("  spaced  "), fallback: "x", want: "  spaced  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got := getEnv(tc.key, tc.fallback)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback int
		want     int
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "LEADAI_TEST_INT_UNSET", setVal: nil, fallback: 42, want: 42},
		{name: "parses valid int", key: "LEADAI_TEST_INT_VALID", setVal: strPtr("8080"), fallback: 0, want: 8080},
		{name: "parses negative int", key: "LEADAI_TEST_INT_NEG", setVal: strPtr("-1"), fallback: 0, want: -1},
		{name: "parses zero", key: "LEADAI_TEST_INT_ZERO", setVal: strPtr("0"), fallback: 99, want: 0},
		{name: "returns fallback for empty string", key: "LEADAI_TEST_INT_EMPTY", setVal: strPtr(""), fallback: 25, want: 25},
		{name: "errors on non-numeric", key: "LEADAI_TEST_INT_NAN", setVal: strPtr("abc"), fallback: 0, wantErr: true},
		{name: "errors on float", key: "LEADAI_TEST_INT_FLOAT", setVal: strPtr("3.14"), fallback: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvInt(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback bool
		want     bool
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "LEADAI_TEST_BOOL_UNSET", setVal: nil, fallback: false, want: false},
		{name: "fallback true when unset", key: "LEADAI_TEST_BOOL_UNSETTRUE", setVal: nil, fallback: true, want: true},
		{name: "parses true", key: "LEADAI_TEST_BOOL_TRUE", setVal: strPtr("true"), fallback: false, want: true},
		{name: "parses false", key: "LEADAI_TEST_BOOL_FALSE", setVal: strPtr("false"), fallback: true, want: false},
		{name: "parses 1", key: "LEADAI_TEST_BOOL_ONE", setVal: strPtr("1"), fallback: false, want: true},
		{name: "errors on invalid", key: "LEADAI_TEST_BOOL_INV", setVal: strPtr("yes"), fallback: false, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvBool(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "LEADAI_TEST_DUR_UNSET", setVal: nil, fallback: 5 * time.Second, want: 5 * time.Second},
		{name: "parses seconds", key: "LEADAI_TEST_DUR_SEC", setVal: strPtr("30s"), fallback: 0, want: 30 * time.Second},
		{name: "parses hours", key: "LEADAI_TEST_DUR_HR", setVal: strPtr("2h"), fallback: 0, want: 2 * time.Hour},
		{name: "parses composite", key: "LEADAI_TEST_DUR_COMP", setVal: strPtr("1h30m"), fallback: 0, want: 90 * time.Minute},
		{name: "errors on invalid", key: "LEADAI_TEST_DUR_INV", setVal: strPtr("notaduration"), fallback: 0, wantErr: true},
		{name: "errors on bare number", key: "LEADAI_TEST_DUR_BARE", setVal: strPtr("30"), fallback: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvDuration(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ---------------------------------------------------------------------------
// Load() error cases
// ---------------------------------------------------------------------------

func TestLoad_MissingJWTSecret(t *testing.T) {
	// All defaults apply; JWT secret is empty => must fail.
	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "LEADAI_JWT_SECRET")
}

func TestLoad_InvalidEnvVars(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		errMsg string
	}{
		// DB_PORT parse errors
		{name: "DB_PORT not a number", envKey: "LEADAI_DB_PORT", envVal: "abc", errMsg: "LEADAI_DB_PORT"},

		// DB_PORT validation errors (parses fine, fails bounds)
		{name: "DB_PORT zero", envKey: "LEADAI_DB_PORT", envVal: "0", errMsg: "LEADAI_DB_PORT"},
		{name: "DB_PORT negative", envKey: "LEADAI_DB_PORT", envVal: "-1", errMsg: "LEADAI_DB_PORT"},
		{name: "DB_PORT too high", envKey: "LEADAI_DB_PORT", envVal: "65536", errMsg: "LEADAI_DB_PORT"},

		// DB_MAX_CONNS
		{name: "DB_MAX_CONNS zero", envKey: "LEADAI_DB_MAX_CONNS", envVal: "0", errMsg: "LEADAI_DB_MAX_CONNS"},
		{name: "DB_MAX_CONNS not a number", envKey: "LEADAI_DB_MAX_CONNS", envVal: "many", errMsg: "LEADAI_DB_MAX_CONNS"},

		// JWT duration
		{name: "JWT_ACCESS_TTL invalid", envKey: "LEADAI_JWT_ACCESS_TTL", envVal: "badval", errMsg: "LEADAI_JWT_ACCESS_TTL"},
		{name: "JWT_ACCESS_TTL zero", envKey: "LEADAI_JWT_ACCESS_TTL", envVal: "0s", errMsg: "LEADAI_JWT_ACCESS_TTL"},

		// Server timeouts and rate limit
		{name: "SERVER_READ_TIMEOUT invalid", envKey: "LEADAI_SERVER_READ_TIMEOUT", envVal: "notduration", errMsg: "LEADAI_SERVER_READ_TIMEOUT"},
		{name: "SERVER_WRITE_TIMEOUT zero", envKey: "LEADAI_SERVER_WRITE_TIMEOUT", envVal: "0s", errMsg: "LEADAI_SERVER_WRITE_TIMEOUT"},
		{name: "SERVER_RATE_LIMIT zero", envKey: "LEADAI_SERVER_RATE_LIMIT", envVal: "0", errMsg: "LEADAI_SERVER_RATE_LIMIT"},

		// Audit cache window
		{name: "AUDIT_CACHE_WINDOW invalid", envKey: "LEADAI_AUDIT_CACHE_WINDOW", envVal: "oneday", errMsg: "LEADAI_AUDIT_CACHE_WINDOW"},
		{name: "AUDIT_CACHE_WINDOW zero", envKey: "LEADAI_AUDIT_CACHE_WINDOW", envVal: "0s", errMsg: "LEADAI_AUDIT_CACHE_WINDOW"},

		// Redis DB
		{name: "REDIS_DB not a number", envKey: "LEADAI_REDIS_DB", envVal: "abc", errMsg: "LEADAI_REDIS_DB"},

		// Self-hosted
		{name: "SELF_HOSTED not a bool", envKey: "LEADAI_SELF_HOSTED", envVal: "yes", errMsg: "LEADAI_SELF_HOSTED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Always set JWT secret so failures are from the var under test.
			t.Setenv("LEADAI_JWT_SECRET", "test-secret-for-error-cases-32ch!")
			t.Setenv(tc.envKey, tc.envVal)

			cfg, err := Load()
			require.Error(t, err, "expected error for %s=%q", tc.envKey, tc.envVal)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

// ---------------------------------------------------------------------------
// Load() happy paths
// ---------------------------------------------------------------------------

func TestLoad_Defaults(t *testing.T) {
	// Only the required JWT secret is set; everything else uses defaults.
	t.Setenv("LEADAI_JWT_SECRET", "my-dev-secret-at-least-32-chars!!")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Database defaults.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "leadai", cfg.Database.User)
	assert.Empty(t, cfg.Database.Password)
	assert.Equal(t, "leadai_dev", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxConns)

	// Redis defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)

	// JWT defaults.
	assert.Equal(t, "my-dev-secret-at-least-32-chars!!", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)

	// Server defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10, cfg.Server.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)

	// OpenAI defaults: enhancement disabled.
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Empty(t, cfg.OpenAI.Model)

	// Slack defaults.
	assert.Empty(t, cfg.Slack.BotToken)
	assert.Equal(t, "#audits", cfg.Slack.Channel)

	// Audit defaults.
	assert.Equal(t, 24*time.Hour, cfg.Audit.CacheWindow)

	// Self-hosted default.
	assert.False(t, cfg.SelfHosted)
}

func TestLoad_AllCustomValues(t *testing.T) {
	envs := map[string]string{
		// Database
		"LEADAI_DB_HOST":      "db.prod.internal",
		"LEADAI_DB_PORT":      "5433",
		"LEADAI_DB_USER":      "prod_user",
		"LEADAI_DB_PASSWORD":  "s3cret!",
		"LEADAI_DB_NAME":      "leadai_prod",
		"LEADAI_DB_SSLMODE":   "require",
		"LEADAI_DB_MAX_CONNS": "50",
		// Redis
		"LEADAI_REDIS_ADDR":     "redis.prod:6380",
		"LEADAI_REDIS_PASSWORD": "redis-pass",
		"LEADAI_REDIS_DB":       "3",
		// JWT
		"LEADAI_JWT_SECRET":     "prod-jwt-secret-256-bits-long!!!",
		"LEADAI_JWT_ACCESS_TTL": "30m",
		// Server
		"LEADAI_SERVER_ADDR":          ":9090",
		"LEADAI_SERVER_READ_TIMEOUT":  "5s",
		"LEADAI_SERVER_WRITE_TIMEOUT": "90s",
		"LEADAI_SERVER_RATE_LIMIT":    "25",
		"LEADAI_CORS_ORIGINS":         "https://app.leadai.io, https://staging.leadai.io",
		// OpenAI
		"LEADAI_OPENAI_API_KEY": "sk-test",
		"LEADAI_OPENAI_MODEL":   "gpt-4o-mini",
		// Slack
		"LEADAI_SLACK_BOT_TOKEN": "xoxb-test",
		"LEADAI_SLACK_CHANNEL":   "#leadgen",
		// Audit
		"LEADAI_AUDIT_CACHE_WINDOW": "6h",
		// Self-hosted
		"LEADAI_SELF_HOSTED": "true",
	}

	for k, v := range envs {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Database
	assert.Equal(t, "db.prod.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "prod_user", cfg.Database.User)
	assert.Equal(t, "s3cret!", cfg.Database.Password)
	assert.Equal(t, "leadai_prod", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 50, cfg.Database.MaxConns)

	// Redis
	assert.Equal(t, "redis.prod:6380", cfg.Redis.Addr)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)

	// JWT
	assert.Equal(t, "prod-jwt-secret-256-bits-long!!!", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)

	// Server
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 25, cfg.Server.RateLimit)
	assert.Equal(t, []string{"https://app.leadai.io", "https://staging.leadai.io"}, cfg.Server.CORSOrigins)

	// OpenAI
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)

	// Slack
	assert.Equal(t, "xoxb-test", cfg.Slack.BotToken)
	assert.Equal(t, "#leadgen", cfg.Slack.Channel)

	// Audit
	assert.Equal(t, 6*time.Hour, cfg.Audit.CacheWindow)

	// Self-hosted
	assert.True(t, cfg.SelfHosted)
}

// ---------------------------------------------------------------------------
// DSN() output format
// ---------------------------------------------------------------------------

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "default dev values",
			cfg: DatabaseConfig{
				Host: "localhost", Port: 5432, User: "leadai",
				Password: "", DBName: "leadai_dev", SSLMode: "disable",
			},
			want: "host=localhost port=5432 user=leadai password= dbname=leadai_dev sslmode=disable",
		},
		{
			name: "production values",
			cfg: DatabaseConfig{
				Host: "db.prod", Port: 5433, User: "admin",
				Password: "p@ss!", DBName: "leadai_prod", SSLMode: "require",
			},
			want: "host=db.prod port=5433 user=admin password=p@ss! dbname=leadai_prod sslmode=require",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.cfg.DSN())
		})
	}
}

// ---------------------------------------------------------------------------
// validate() direct tests
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	// validBase returns a Config that passes validation.
	validBase := func() *Config {
		return &Config{
			Database: DatabaseConfig{Port: 5432, MaxConns: 25, SSLMode: "require"},
			JWT: JWTConfig{
				Secret:    "test-secret-that-is-at-least-32ch",
				AccessTTL: 15 * time.Minute,
			},
			Server: ServerConfig{
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 60 * time.Second,
				RateLimit:    10,
			},
			Audit: AuditConfig{CacheWindow: 24 * time.Hour},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validBase().validate())
	})

	t.Run("empty JWT secret fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.JWT.Secret = ""
		assert.ErrorContains(t, c.validate(), "LEADAI_JWT_SECRET")
	})

	t.Run("JWT secret too short fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.JWT.Secret = "only-31-characters-long-secret!"
		assert.ErrorContains(t, c.validate(), "LEADAI_JWT_SECRET")
	})

	t.Run("JWT secret exactly 32 chars passes", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.JWT.Secret = "exactly-32-characters-long-sec!!"
		assert.NoError(t, c.validate())
	})

	t.Run("port 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Database.Port = 0
		assert.ErrorContains(t, c.validate(), "LEADAI_DB_PORT")
	})

	t.Run("port 65535 passes", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Database.Port = 65535
		assert.NoError(t, c.validate())
	})

	t.Run("MaxConns 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Database.MaxConns = 0
		assert.ErrorContains(t, c.validate(), "LEADAI_DB_MAX_CONNS")
	})

	t.Run("AccessTTL 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.JWT.AccessTTL = 0
		assert.ErrorContains(t, c.validate(), "LEADAI_JWT_ACCESS_TTL")
	})

	t.Run("ReadTimeout negative fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Server.ReadTimeout = -time.Second
		assert.ErrorContains(t, c.validate(), "LEADAI_SERVER_READ_TIMEOUT")
	})

	t.Run("WriteTimeout 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Server.WriteTimeout = 0
		assert.ErrorContains(t, c.validate(), "LEADAI_SERVER_WRITE_TIMEOUT")
	})

	t.Run("RateLimit 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Server.RateLimit = 0
		assert.ErrorContains(t, c.validate(), "LEADAI_SERVER_RATE_LIMIT")
	})

	t.Run("CacheWindow 0 fails", func(t *testing.T) {
		t.Parallel()
		c := validBase()
		c.Audit.CacheWindow = 0
		assert.ErrorContains(t, c.validate(), "LEADAI_AUDIT_CACHE_WINDOW")
	})
}

// ---------------------------------------------------------------------------
// Test helper
// ---------------------------------------------------------------------------

func strPtr(s string) *string {
	return &s
}
