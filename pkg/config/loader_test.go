package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

type testConfig struct {
	DB     DBConfig     `yaml:"db"`
	Server ServerConfig `yaml:"server"`
	JWT    JWTConfig    `yaml:"jwt"`
}

func TestLoadConfig_MergesEnvironmentFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
db:
  host: localhost
  port: 5432
  name: notifyme
server:
  port: ":8080"
  shutdown_timeout: 30s
`)
	writeFile(t, dir, "production.yaml", `
db:
  host: db.internal
server:
  port: ":9090"
`)

	cfgMap, err := LoadConfig("production", dir)
	require.NoError(t, err)

	var cfg testConfig
	require.NoError(t, Decode(cfgMap, &cfg))

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "notifyme", cfg.DB.Name)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadConfig_MissingEnvironmentFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "db:\n  host: localhost\n")

	cfgMap, err := LoadConfig("staging", dir)
	require.NoError(t, err)

	var cfg testConfig
	require.NoError(t, Decode(cfgMap, &cfg))
	assert.Equal(t, "localhost", cfg.DB.Host)
}

func TestLoadConfig_MissingBaseFails(t *testing.T) {
	_, err := LoadConfig("local", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base.yaml")
}

func TestLoadConfig_SubstitutesSecrets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
db:
  password: ${NOTIFYME_TEST_DB_PASSWORD}
jwt:
  secret: ${NOTIFYME_TEST_JWT_SECRET}
server:
  port: ${NOTIFYME_TEST_UNSET}
`)
	writeFile(t, dir, "secrets.env", "NOTIFYME_TEST_DB_PASSWORD=\"s3cret\"\nNOTIFYME_TEST_JWT_SECRET=from-file\n")
	t.Setenv("NOTIFYME_TEST_JWT_SECRET", "from-env")

	cfgMap, err := LoadConfig("local", dir)
	require.NoError(t, err)

	var cfg testConfig
	require.NoError(t, Decode(cfgMap, &cfg))

	assert.Equal(t, "s3cret", cfg.DB.Password)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "${NOTIFYME_TEST_UNSET}", cfg.Server.Port)
}

func TestMergeMaps(t *testing.T) {
	dst := map[string]interface{}{
		"a": 1,
		"nested": map[string]interface{}{
			"x": "keep",
			"y": "old",
		},
	}
	src := map[string]interface{}{
		"b": 2,
		"nested": map[string]interface{}{
			"y": "new",
		},
	}

	got := mergeMaps(dst, src)

	assert.Equal(t, 1, got["a"])
	assert.Equal(t, 2, got["b"])
	assert.Equal(t, map[string]interface{}{"x": "keep", "y": "new"}, got["nested"])
	assert.Equal(t, "old", dst["nested"].(map[string]interface{})["y"], "dst must not be mutated")
}

func TestOverrideDBFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "envdb")

	cfg := DBConfig{Host: "localhost", Port: 5432, Name: "notifyme", User: "app"}
	OverrideDBFromEnv(&cfg)

	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, "envdb", cfg.Name)
	assert.Equal(t, "app", cfg.User)
}

func TestDBConfigURL(t *testing.T) {
	cfg := DBConfig{Host: "localhost", Port: 5432, User: "app", Password: "pw", Name: "notifyme"}
	assert.Equal(t, "postgres://app:pw@localhost:5432/notifyme?sslmode=disable", cfg.URL())

	cfg.SSLMode = "require"
	assert.Equal(t, "postgres://app:pw@localhost:5432/notifyme?sslmode=require", cfg.URL())
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns environment variable when set",
			key:          "NOTIFYME_TEST_KEY",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when environment variable not set",
			key:          "NOTIFYME_TEST_MISSING",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}
			assert.Equal(t, tt.want, GetEnv(tt.key, tt.defaultValue))
		})
	}
}
