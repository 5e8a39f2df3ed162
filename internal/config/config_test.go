package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "sign-key")
	t.Setenv("APP_TOKEN_ISSUER", "travelnote")
	t.Setenv("APP_TOKEN_DURATION", "24h")
	t.Setenv("STORAGE_DB_DRIVER", "sqlite3")
	t.Setenv("STORAGE_DB_DATABASE_URI", "travelnote.db")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("ADAPTER_GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "sign-key", cfg.App.TokenSignKey)
	assert.Equal(t, "travelnote", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "travelnote.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Adapter.GeocoderBaseURL)
}

func TestParseJSON_FullFile(t *testing.T) {
	raw := map[string]any{
		"app": map[string]any{
			"token_sign_key": "json-key",
			"token_issuer":   "travelnote-json",
			"token_duration": "1h",
		},
		"storage": map[string]any{
			"db": map[string]any{"driver": "pgx", "dsn": "postgres://localhost/travelnote"},
		},
		"server": map[string]any{
			"http_address":    "127.0.0.1:9090",
			"request_timeout": "30s",
		},
		"adapter": map[string]any{
			"geocoder_base_url": "https://geo.example.com",
			"request_timeout":   "5s",
			"cache_size":        256,
		},
		"workers": map[string]any{
			"boot_reschedule_timeout": "45s",
		},
	}
	payload, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-key", cfg.App.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 256, cfg.Adapter.CacheSize)
	assert.Equal(t, 45*time.Second, cfg.Workers.BootRescheduleTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DB.Driver = "oracle"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_RejectsEmptyDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DB.DSN = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_RejectsMissingTokenSettings(t *testing.T) {
	cfg := validConfig()
	cfg.App.TokenSignKey = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}

func TestValidate_RejectsMissingAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Server.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().validate())
}

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  "key",
			TokenIssuer:   "travelnote",
			TokenDuration: time.Hour,
		},
		Storage: Storage{DB: DB{Driver: "sqlite3", DSN: "travelnote.db"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
}

func TestNetAddress_SetAndString(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("localhost:8080"))
	assert.Equal(t, "localhost:8080", addr.String())

	require.Error(t, addr.Set("no-port"))
	require.Error(t, addr.Set("localhost:0"))
	require.Error(t, addr.Set("not-an-ip:80"))
}
