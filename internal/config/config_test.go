package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[server]
http_port = 9090
internal_token = "secret-token"

[database]
host = "db"
dbname = "cleanmate"
user = "cleanmate"

[mongo]
uri = "mongodb://mongo:27017"

[stripe]
secret_key = "sk_test_123"

[firebase]
project_id = "cleanmate-dev"
web_api_key = "api-key"

[booking]
timezone = "America/New_York"

[ratelimit]
trusted_proxies = ["10.0.0.0/8"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "cleanmate", cfg.Mongo.Database)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 72, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, 30, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.RateLimit.TrustedProxies)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_from_env")
	t.Setenv("DB_PASSWORD", "pw_from_env")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "sk_from_env", cfg.Stripe.SecretKey)
	assert.Equal(t, "pw_from_env", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=pw_from_env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing internal token",
			content: strings.Replace(validConfig, `internal_token = "secret-token"`, "", 1),
		},
		{
			name:    "bad timezone",
			content: strings.Replace(validConfig, "America/New_York", "Mars/Olympus", 1),
		},
		{
			name:    "port out of range",
			content: strings.Replace(validConfig, "9090", "70000", 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidate_RabbitRequiresURL(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	cfg.RabbitMQ.Enabled = true
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
