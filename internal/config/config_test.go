package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "ev"
password = "from-file"
dbname = "ev_charging"

[auth]
jwt_secret = "0123456789abcdef0123"

[booking]
time_zone = "Europe/Berlin"
price_per_hour = 4.5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "ev_charging", cfg.Database.DBName)
	assert.Equal(t, 60*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, 4.5, cfg.Booking.PricePerHour)
	assert.Equal(t, 256, cfg.Booking.QRSize)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret-long-enough")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret-long-enough", cfg.Auth.JWTSecret)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing dbname", "[auth]\njwt_secret = \"0123456789abcdef0123\"\n"},
		{"short secret", "[database]\ndbname = \"x\"\n[auth]\njwt_secret = \"short\"\n"},
		{"bad time zone", "[database]\ndbname = \"x\"\n[auth]\njwt_secret = \"0123456789abcdef0123\"\n[booking]\ntime_zone = \"Mars/Olympus\"\n"},
		{"mail without host", "[database]\ndbname = \"x\"\n[auth]\njwt_secret = \"0123456789abcdef0123\"\n[mail]\nenabled = true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
