// Package basehdl holds the response helpers shared by all handlers.
package basehdl

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"video_vault/internal/common"
	"video_vault/internal/logger"
)

// JSONResponse writes a JSON response with an explicit UTF-8 charset.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleError maps an error onto the response exactly once. Typed errors
// carry their own status code; anything else is logged server-side and
// surfaced as a generic 500 so internal detail never leaks to the caller.
func HandleError(c fiber.Ctx, err error) error {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":    appErr.Code.Code,
				"details": appErr.Details,
			}).WithError(err).Error("Request failed")
		}
		return JSONResponse(c, appErr.StatusCode, fiber.Map{
			"code":    appErr.Code.Code,
			"message": appErr.Message,
			"status":  "error",
		})
	}

	logger.WithRequest(c).WithError(err).Error("Unhandled request error")
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	})
}
