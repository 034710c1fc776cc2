package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo"

	"video_vault/internal/common"
)

// AppName is reported by the root probe.
const AppName = "video_vault"

// SystemHandler serves the root and health probes.
type SystemHandler struct {
	mongoClient *mongo.Client
}

// NewSystemHandler creates a SystemHandler. The client is only used for
// the health ping.
func NewSystemHandler(mongoClient *mongo.Client) *SystemHandler {
	return &SystemHandler{mongoClient: mongoClient}
}

// HandleRoot reports the service name and that it is up.
func (h *SystemHandler) HandleRoot(c fiber.Ctx) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"name": AppName,
		"ok":   true,
		"time": time.Now().Format(time.RFC3339),
	})
}

// HandleHealth reports liveness, degraded to 503 when the document store
// does not answer a ping within 2 seconds.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if h.mongoClient != nil {
		if err := h.mongoClient.Ping(ctx, nil); err != nil {
			return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
				"ok":   false,
				"time": time.Now().Format(time.RFC3339),
			})
		}
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"ok":   true,
		"time": time.Now().Format(time.RFC3339),
	})
}
