// Package videohdl maps the HTTP surface onto the video service:
// validation and truncation of untrusted input, then one service call,
// then a shaped JSON response.
package videohdl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	basehdl "video_vault/internal/api/base/handler"
	videodto "video_vault/internal/api/video/dto"
	"video_vault/internal/api/video/models"
	videosvc "video_vault/internal/api/video/service"
	"video_vault/internal/common"
)

// videoMediaTypePrefix is the content-type prefix uploads must declare.
const videoMediaTypePrefix = "video/"

// VideoService is the service contract the handler needs.
type VideoService interface {
	Create(ctx context.Context, input videosvc.CreateVideoInput) (models.Video, error)
	GetByID(ctx context.Context, id string) (models.Video, error)
	List(ctx context.Context) ([]videodto.VideoListItem, error)
	AddComment(ctx context.Context, videoID string, input videodto.CommentCreateInput) (models.Comment, error)
	DeleteComment(ctx context.Context, videoID, commentID, userID string) error
}

// VideoHandler serves the /api/videos routes.
type VideoHandler struct {
	service      VideoService
	validate     *validator.Validate
	maxJSONBytes int64
}

// NewVideoHandler creates a VideoHandler.
func NewVideoHandler(service VideoService, maxJSONBytes int64) *VideoHandler {
	return &VideoHandler{
		service:      service,
		validate:     validator.New(),
		maxJSONBytes: maxJSONBytes,
	}
}

// HandleList returns all videos newest first, comments excluded.
func (h *VideoHandler) HandleList(c fiber.Ctx) error {
	items, err := h.service.List(c.Context())
	if err != nil {
		return basehdl.HandleError(c, err)
	}
	return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"items": items,
	})
}

// HandleGetOne returns the full video document, comments included.
func (h *VideoHandler) HandleGetOne(c fiber.Ctx) error {
	video, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return basehdl.HandleError(c, err)
	}
	return basehdl.JSONResponse(c, common.StatusOK, video)
}

// HandleUpload accepts a multipart upload (video file, title,
// description), stores the payload, and creates the document.
func (h *VideoHandler) HandleUpload(c fiber.Ctx) error {
	title := c.FormValue("title")
	if strings.TrimSpace(title) == "" {
		return basehdl.HandleError(c, common.NewError(
			common.ErrCodeValidationInput, "title is required", common.StatusBadRequest, nil))
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return basehdl.HandleError(c, common.NewError(
			common.ErrCodeValidationInput, "video file is required", common.StatusBadRequest, err))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, videoMediaTypePrefix) {
		return basehdl.HandleError(c, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("unsupported content type %q, expected %s*", contentType, videoMediaTypePrefix),
			common.StatusBadRequest, nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return basehdl.HandleError(c, common.ErrUploadFailed)
	}
	defer file.Close()

	video, err := h.service.Create(c.Context(), videosvc.CreateVideoInput{
		Title:       title,
		Description: c.FormValue("description"),
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return basehdl.HandleError(c, err)
	}
	return basehdl.JSONResponse(c, common.StatusCreated, video)
}

// HandleAddComment adds a comment to a video.
func (h *VideoHandler) HandleAddComment(c fiber.Ctx) error {
	var input videodto.CommentCreateInput
	if err := h.parseJSONBody(c, &input); err != nil {
		return basehdl.HandleError(c, err)
	}

	comment, err := h.service.AddComment(c.Context(), c.Params("id"), input)
	if err != nil {
		return basehdl.HandleError(c, err)
	}
	return basehdl.JSONResponse(c, common.StatusCreated, fiber.Map{
		"ok":      true,
		"comment": comment,
	})
}

// HandleDeleteComment removes a comment owned by the supplied userId.
func (h *VideoHandler) HandleDeleteComment(c fiber.Ctx) error {
	var input videodto.CommentDeleteInput
	if err := h.parseJSONBody(c, &input); err != nil {
		return basehdl.HandleError(c, err)
	}

	err := h.service.DeleteComment(c.Context(), c.Params("id"), c.Params("commentId"), input.UserID)
	if err != nil {
		return basehdl.HandleError(c, err)
	}
	return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"ok": true,
	})
}

// parseJSONBody enforces the JSON body cap before any decoding, then
// decodes and validates the input struct.
func (h *VideoHandler) parseJSONBody(c fiber.Ctx, out interface{}) error {
	body := c.Body()
	if int64(len(body)) > h.maxJSONBytes {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("request body exceeds %d bytes", h.maxJSONBytes),
			common.StatusBadRequest, nil)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
	}
	if err := h.validate.Struct(out); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}
