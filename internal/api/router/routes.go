// Package router registers the HTTP routes on the Fiber app.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "video_vault/internal/api/base/handler"
	videohdl "video_vault/internal/api/video/handler"
)

// Register wires the system probes and the video API.
func Register(app *fiber.App, system *basehdl.SystemHandler, videos *videohdl.VideoHandler) {
	app.Get("/", system.HandleRoot)
	app.Get("/health", system.HandleHealth)

	api := app.Group("/api")
	api.Get("/videos", videos.HandleList)
	api.Post("/videos", videos.HandleUpload)
	api.Get("/videos/:id", videos.HandleGetOne)
	api.Post("/videos/:id/comments", videos.HandleAddComment)
	api.Delete("/videos/:id/comments/:commentId", videos.HandleDeleteComment)
}
