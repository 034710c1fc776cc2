package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost:27017")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "minio123")
}

func TestNewConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := NewConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, "videoapp", cfg.MongoDBName)
	assert.Equal(t, "videos", cfg.MongoDBColVideos)
	assert.Equal(t, "videos", cfg.MinioBucket)
	assert.Equal(t, int64(262144000), cfg.MaxUploadBytes)
	assert.Equal(t, int64(2097152), cfg.MaxJSONBytes)
	assert.False(t, cfg.EnableTLS)
}

func TestNewConfigMissingRequired(t *testing.T) {
	// t.Setenv registers the restore; the variables must be truly unset
	// because `required` only triggers on absent variables.
	for _, key := range []string{"MONGODB_CONNECTION_URI", "MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
		t.Setenv(key, "placeholder")
		require.NoError(t, os.Unsetenv(key))
	}

	assert.Nil(t, NewConfig())
}

func TestNewConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("MINIO_BUCKET", "clips")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := NewConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "clips", cfg.MinioBucket)
	assert.True(t, cfg.MinioUseSSL)
}
