// Package videosvc implements the video domain operations: upload, list,
// detail, and the comment mutations on the embedded comment list.
package videosvc

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "video_vault/internal/api/base/service"
	videodto "video_vault/internal/api/video/dto"
	"video_vault/internal/api/video/models"
	"video_vault/internal/common"
	"video_vault/internal/logger"
	"video_vault/internal/storage"
)

// replaceAttempts bounds the optimistic retry loop on comment mutations.
// After exhaustion the conflict is surfaced to the caller as a 409.
const replaceAttempts = 3

// CreateVideoInput carries a validated upload into the service.
type CreateVideoInput struct {
	Title       string
	Description string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// VideoService ties the document store and the object store together.
// Every comment mutation is a read-modify-write over the whole video
// document, made safe under concurrent writers by a version check on the
// replace: a stale replace matches nothing and the mutation is retried on
// a fresh read. Without the check, two concurrent mutations would race
// and the second replace would silently discard the first.
type VideoService struct {
	videos basesvc.BaseServiceMongo[models.Video]
	blobs  storage.ObjectStore
}

// NewVideoService creates a VideoService on the given stores.
func NewVideoService(videos basesvc.BaseServiceMongo[models.Video], blobs storage.ObjectStore) *VideoService {
	return &VideoService{
		videos: videos,
		blobs:  blobs,
	}
}

// Create uploads the binary payload, then persists the video document
// referencing the returned locator.
func (s *VideoService) Create(ctx context.Context, input CreateVideoInput) (models.Video, error) {
	var zero models.Video

	title := models.Truncate(strings.TrimSpace(input.Title), models.MaxTitleLen)
	if title == "" {
		return zero, common.NewError(common.ErrCodeValidationInput, "title is required", common.StatusBadRequest, nil)
	}
	description := models.Truncate(input.Description, models.MaxDescriptionLen)

	id := uuid.NewString()
	blobName := models.BlobName(id, input.FileName)

	blobURL, err := s.blobs.Put(ctx, blobName, input.Content, input.Size, input.ContentType, map[string]string{
		"videoId": id,
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Object store upload failed")
		return zero, common.ErrUploadFailed
	}

	video := models.Video{
		ID:          id,
		Title:       title,
		Description: description,
		BlobName:    blobName,
		BlobURL:     blobURL,
		CreatedAt:   time.Now().UnixMilli(),
		Comments:    []models.Comment{},
		Version:     1,
	}

	return s.videos.InsertOne(ctx, video)
}

// GetByID returns the full video document, comments included.
func (s *VideoService) GetByID(ctx context.Context, id string) (models.Video, error) {
	return s.videos.FindOneByID(ctx, id)
}

// List returns all videos newest first, without their comments.
func (s *VideoService) List(ctx context.Context) ([]videodto.VideoListItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"comments": 0})

	videos, err := s.videos.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	items := make([]videodto.VideoListItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, videodto.VideoListItem{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			BlobName:    v.BlobName,
			BlobURL:     v.BlobURL,
			CreatedAt:   v.CreatedAt,
		})
	}
	return items, nil
}

// AddComment prepends a new comment to the video's comment list.
func (s *VideoService) AddComment(ctx context.Context, videoID string, input videodto.CommentCreateInput) (models.Comment, error) {
	var zero models.Comment

	userID := models.Truncate(strings.TrimSpace(input.UserID), models.MaxUserIDLen)
	text := models.Truncate(strings.TrimSpace(input.Text), models.MaxCommentTextLen)
	if userID == "" || text == "" {
		return zero, common.NewError(common.ErrCodeValidationInput, "userId and text are required", common.StatusBadRequest, nil)
	}
	authorName := models.Truncate(strings.TrimSpace(input.AuthorName), models.MaxAuthorNameLen)
	if authorName == "" {
		authorName = models.DefaultAuthorName
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		UserID:     userID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now().UnixMilli(),
	}

	err := s.mutate(ctx, videoID, func(v *models.Video) error {
		v.PrependComment(comment)
		return nil
	})
	if err != nil {
		return zero, err
	}
	return comment, nil
}

// DeleteComment removes a comment when the supplied userId matches the
// stored one exactly. A mismatch leaves the comment untouched.
func (s *VideoService) DeleteComment(ctx context.Context, videoID, commentID, userID string) error {
	userID = models.Truncate(strings.TrimSpace(userID), models.MaxUserIDLen)
	if userID == "" {
		return common.NewError(common.ErrCodeValidationInput, "userId is required", common.StatusBadRequest, nil)
	}

	return s.mutate(ctx, videoID, func(v *models.Video) error {
		comment, ok := v.FindComment(commentID)
		if !ok {
			return common.ErrNotFound
		}
		if comment.UserID != userID {
			return common.ErrForbidden
		}
		v.RemoveComment(commentID)
		return nil
	})
}

// mutate runs one read-modify-write cycle on a video document: point read
// by id, apply fn to the in-memory copy, replace conditional on the read
// version. A stale version fails the replace's match and the cycle starts
// over on a fresh read, bounded by replaceAttempts.
func (s *VideoService) mutate(ctx context.Context, videoID string, fn func(*models.Video) error) error {
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		video, err := s.videos.FindOneByID(ctx, videoID)
		if err != nil {
			return err
		}

		if err := fn(&video); err != nil {
			return err
		}

		readVersion := video.Version
		video.Version = readVersion + 1

		err = s.videos.ReplaceOne(ctx, bson.M{"_id": videoID, "version": readVersion}, video)
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrConflict) {
			return err
		}

		logger.GetAppLogger().WithFields(map[string]interface{}{
			"videoId": videoID,
			"attempt": attempt + 1,
		}).Warn("Concurrent write detected on video document, retrying")
	}
	return common.ErrConflict
}
