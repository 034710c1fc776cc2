package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"video_vault/config"
	basehdl "video_vault/internal/api/base/handler"
	"video_vault/internal/api/router"
	videohdl "video_vault/internal/api/video/handler"
	"video_vault/internal/common"
	"video_vault/internal/logger"
)

// InitFiberApp builds the Fiber application: base config, the central
// error handler, the middleware stack, and the routes.
func InitFiberApp(cfg *config.Configuration, system *basehdl.SystemHandler, videos *videohdl.VideoHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Video Vault API",
		ServerHeader:  "Video Vault API",
		StrictRouting: false,
		CaseSensitive: true,

		// The body limit is the upload ceiling; the tighter JSON cap for
		// comment bodies is enforced in the handlers.
		BodyLimit:    int(cfg.MaxUploadBytes),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: func(c fiber.Ctx, err error) error {
			// Typed application errors already carry their mapping.
			var appErr *common.Error
			if errors.As(err, &appErr) {
				return basehdl.HandleError(c, err)
			}

			code := fiber.StatusInternalServerError
			message := common.MsgInternalError
			errorCode := common.ErrCodeInternalServer.Code

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
				switch code {
				case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusNotFound:
					errorCode = common.ErrCodeDatabaseQuery.Code
				}
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
			}).WithError(err).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// Request ID first so every log line of a request can be traced.
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// CORS before everything else that can answer, so preflights work.
	var allowOrigins []string
	if cfg.CORSOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(cfg.CORSOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Recover keeps a panicking handler from taking the process down.
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": e,
			}).Error("Panic recovered")
		},
	}))

	router.Register(app, system, videos)

	return app
}
