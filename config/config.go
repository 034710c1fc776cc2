package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the application needs to run.
// Every field maps to an environment variable; required ones make startup
// fail fast instead of serving with a half-wired backend.
type Configuration struct {
	Address     string `env:"ADDRESS" envDefault:":8080"`  // Listen address
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"` // Allowed origins (comma separated, * = all)

	// Document store (MongoDB)
	MongoDBConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // Connection string
	MongoDBName          string `env:"MONGODB_DBNAME" envDefault:"videoapp"`
	MongoDBColVideos     string `env:"MONGODB_COLLECTION_VIDEOS" envDefault:"videos"`

	// Object store (MinIO)
	MinioEndpoint  string `env:"MINIO_ENDPOINT,required"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY,required"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY,required"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"videos"`

	// Transport-boundary size caps. Oversized requests are rejected before
	// any validation logic runs.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"262144000"` // ~250MB
	MaxJSONBytes   int64 `env:"MAX_JSON_BYTES" envDefault:"2097152"`     // ~2MB

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// getEnvPath returns the path to the env file for the current environment,
// searching upward from the working directory for a config/env folder.
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file (when one exists) and parses the process
// environment into a Configuration. Returns nil when a required variable
// is missing; the caller treats that as fatal.
func NewConfig() *Configuration {
	if envPath := getEnvPath(); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				// fmt because the logger may not be initialized yet here
				fmt.Printf("Could not load env file at %s: %v\n", envPath, err)
				return nil
			}
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Failed to parse configuration: %+v\n", err)
		return nil
	}

	return &cfg
}
