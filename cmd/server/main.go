package main

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/gofiber/fiber/v3"

	"video_vault/config"
	basehdl "video_vault/internal/api/base/handler"
	basesvc "video_vault/internal/api/base/service"
	videohdl "video_vault/internal/api/video/handler"
	"video_vault/internal/api/video/models"
	videosvc "video_vault/internal/api/video/service"
	"video_vault/internal/database"
	"video_vault/internal/logger"
	"video_vault/internal/storage"
)

// initLogger initializes the application-wide logger. The logger reads
// its configuration from environment variables.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	logger.GetAppLogger().Info("Logger system initialized")
}

func main() {
	initLogger()
	log := logger.GetAppLogger()

	cfg := config.NewConfig()
	if cfg == nil {
		log.Fatal("Failed to load configuration")
	}

	ctx := context.Background()

	// Backing stores. Provisioning happens once here, before any traffic;
	// failure aborts startup rather than serving degraded.
	mongoClient, err := database.Connect(ctx, cfg.MongoDBConnectionURI)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	if err := database.EnsureDatabaseAndCollections(mongoClient, cfg.MongoDBName, cfg.MongoDBColVideos); err != nil {
		log.Fatalf("MongoDB provisioning failed: %v", err)
	}

	blobStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("MinIO client creation failed: %v", err)
	}
	if err := blobStore.EnsureBucket(ctx); err != nil {
		log.Fatalf("MinIO bucket provisioning failed: %v", err)
	}

	// Services and handlers, dependency-injected. Client handles are
	// read-only from here on.
	videosCollection := mongoClient.Database(cfg.MongoDBName).Collection(cfg.MongoDBColVideos)
	videoService := videosvc.NewVideoService(
		basesvc.NewBaseServiceMongo[models.Video](videosCollection),
		blobStore,
	)

	systemHandler := basehdl.NewSystemHandler(mongoClient)
	videoHandler := videohdl.NewVideoHandler(videoService, cfg.MaxJSONBytes)

	app := InitFiberApp(cfg, systemHandler, videoHandler)

	listen(app, cfg)
}

// listen starts the Fiber server, with TLS when configured.
func listen(app *fiber.App, cfg *config.Configuration) {
	log := logger.GetAppLogger()

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", cfg.Address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithFields(map[string]interface{}{
			"address":  cfg.Address,
			"protocol": "HTTPS",
		}).Info("Starting server")
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
		return
	}

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
	}).Info("Starting server")
	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}
