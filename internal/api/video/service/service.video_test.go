package videosvc

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	videodto "video_vault/internal/api/video/dto"
	"video_vault/internal/api/video/models"
	"video_vault/internal/common"
)

// fakeVideoRepo is an in-memory document store honoring the versioned
// replace contract: a replace whose filter version does not match the
// stored document matches nothing and returns ErrConflict.
type fakeVideoRepo struct {
	docs map[string]models.Video

	lastFindOpts *options.FindOptions
	replaceCalls int

	// forceConflicts makes the first N replace calls fail with a
	// conflict regardless of version, to exercise the retry loop.
	forceConflicts int
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{docs: map[string]models.Video{}}
}

func (f *fakeVideoRepo) InsertOne(_ context.Context, data models.Video) (models.Video, error) {
	f.docs[data.ID] = data
	return data, nil
}

func (f *fakeVideoRepo) FindOneByID(_ context.Context, id string) (models.Video, error) {
	doc, ok := f.docs[id]
	if !ok {
		return models.Video{}, common.ErrNotFound
	}
	return doc, nil
}

func (f *fakeVideoRepo) Find(_ context.Context, _ interface{}, opts *options.FindOptions) ([]models.Video, error) {
	f.lastFindOpts = opts
	out := []models.Video{}
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeVideoRepo) ReplaceOne(_ context.Context, filter interface{}, doc models.Video) error {
	f.replaceCalls++
	if f.forceConflicts > 0 {
		f.forceConflicts--
		return common.ErrConflict
	}

	m, ok := filter.(bson.M)
	if !ok {
		return common.ErrConflict
	}
	id, _ := m["_id"].(string)
	version, _ := m["version"].(int64)

	current, exists := f.docs[id]
	if !exists || current.Version != version {
		return common.ErrConflict
	}
	f.docs[id] = doc
	return nil
}

type fakeBlobStore struct {
	lastKey         string
	lastContentType string
	lastSize        int64
	uploaded        []byte
	err             error
}

func (f *fakeBlobStore) EnsureBucket(context.Context) error { return nil }

func (f *fakeBlobStore) Put(_ context.Context, key string, reader io.Reader, size int64, contentType string, _ map[string]string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastKey = key
	f.lastContentType = contentType
	f.lastSize = size
	f.uploaded, _ = io.ReadAll(reader)
	return "http://minio.local/videos/" + key, nil
}

func newServiceWithVideo(t *testing.T, comments ...models.Comment) (*VideoService, *fakeVideoRepo, string) {
	t.Helper()
	repo := newFakeVideoRepo()
	svc := NewVideoService(repo, &fakeBlobStore{})
	repo.docs["vid-1"] = models.Video{
		ID:       "vid-1",
		Title:    "Intro",
		Comments: comments,
		Version:  1,
	}
	return svc, repo, "vid-1"
}

func TestCreateStoresBlobAndDocument(t *testing.T) {
	repo := newFakeVideoRepo()
	blobs := &fakeBlobStore{}
	svc := NewVideoService(repo, blobs)

	video, err := svc.Create(context.Background(), CreateVideoInput{
		Title:       "Intro",
		Description: "first clip",
		FileName:    "intro.mov",
		ContentType: "video/quicktime",
		Size:        4,
		Content:     bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, video.ID)
	assert.Equal(t, video.ID+".mov", video.BlobName)
	assert.Equal(t, video.BlobName, blobs.lastKey)
	assert.Equal(t, "video/quicktime", blobs.lastContentType)
	assert.Equal(t, []byte("data"), blobs.uploaded)
	// Locator is stored verbatim as returned by the store.
	assert.Equal(t, "http://minio.local/videos/"+video.BlobName, video.BlobURL)
	assert.NotNil(t, video.Comments)
	assert.Empty(t, video.Comments)
	assert.NotZero(t, video.CreatedAt)

	stored, err := repo.FindOneByID(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, video, stored)
}

func TestCreateTruncatesTitleAndDescription(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewVideoService(repo, &fakeBlobStore{})

	video, err := svc.Create(context.Background(), CreateVideoInput{
		Title:       strings.Repeat("t", 200),
		Description: strings.Repeat("d", 400),
		FileName:    "a.mp4",
		Content:     bytes.NewReader(nil),
	})
	require.NoError(t, err)
	assert.Len(t, video.Title, models.MaxTitleLen)
	assert.Len(t, video.Description, models.MaxDescriptionLen)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc := NewVideoService(newFakeVideoRepo(), &fakeBlobStore{})

	_, err := svc.Create(context.Background(), CreateVideoInput{
		Title:   "   ",
		Content: bytes.NewReader(nil),
	})
	require.Error(t, err)
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}

func TestCreateDefaultsExtensionToMp4(t *testing.T) {
	svc := NewVideoService(newFakeVideoRepo(), &fakeBlobStore{})

	video, err := svc.Create(context.Background(), CreateVideoInput{
		Title:    "Intro",
		FileName: "rawupload",
		Content:  bytes.NewReader(nil),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(video.BlobName, ".mp4"))
}

func TestCreateSurfacesUploadFailureOpaquely(t *testing.T) {
	svc := NewVideoService(newFakeVideoRepo(), &fakeBlobStore{err: io.ErrUnexpectedEOF})

	_, err := svc.Create(context.Background(), CreateVideoInput{
		Title:   "Intro",
		Content: bytes.NewReader(nil),
	})
	assert.ErrorIs(t, err, common.ErrUploadFailed)
}

func TestListExcludesCommentsAndSortsNewestFirst(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewVideoService(repo, &fakeBlobStore{})
	repo.docs["a"] = models.Video{ID: "a", Title: "A", CreatedAt: 1, Version: 1}

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	// The scan must project comments away and sort by createdAt desc.
	require.NotNil(t, repo.lastFindOpts)
	assert.Equal(t, bson.M{"comments": 0}, repo.lastFindOpts.Projection)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, repo.lastFindOpts.Sort)
}

func TestAddCommentPrependsNewestFirst(t *testing.T) {
	svc, repo, id := newServiceWithVideo(t, models.Comment{ID: "old", UserID: "u0", Text: "first"})

	comment, err := svc.AddComment(context.Background(), id, videodto.CommentCreateInput{
		UserID: "u1",
		Text:   "hi",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, models.DefaultAuthorName, comment.AuthorName)

	stored := repo.docs[id]
	require.Len(t, stored.Comments, 2)
	assert.Equal(t, comment.ID, stored.Comments[0].ID)
	assert.Equal(t, "old", stored.Comments[1].ID)
	assert.Equal(t, int64(2), stored.Version)
}

func TestAddCommentTruncatesFields(t *testing.T) {
	svc, repo, id := newServiceWithVideo(t)

	comment, err := svc.AddComment(context.Background(), id, videodto.CommentCreateInput{
		UserID:     strings.Repeat("u", 100),
		AuthorName: strings.Repeat("a", 60),
		Text:       strings.Repeat("x", 900),
	})
	require.NoError(t, err)
	assert.Len(t, comment.UserID, models.MaxUserIDLen)
	assert.Len(t, comment.AuthorName, models.MaxAuthorNameLen)
	assert.Len(t, comment.Text, models.MaxCommentTextLen)
	assert.Len(t, repo.docs[id].Comments, 1)
}

func TestAddCommentValidation(t *testing.T) {
	svc, _, id := newServiceWithVideo(t)

	_, err := svc.AddComment(context.Background(), id, videodto.CommentCreateInput{UserID: "u1", Text: "  "})
	require.Error(t, err)
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}

func TestAddCommentMissingVideo(t *testing.T) {
	svc := NewVideoService(newFakeVideoRepo(), &fakeBlobStore{})

	_, err := svc.AddComment(context.Background(), "missing", videodto.CommentCreateInput{UserID: "u1", Text: "hi"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAddCommentRetriesOnConflictThenSucceeds(t *testing.T) {
	svc, repo, id := newServiceWithVideo(t)
	repo.forceConflicts = 1

	_, err := svc.AddComment(context.Background(), id, videodto.CommentCreateInput{UserID: "u1", Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.replaceCalls)
	assert.Len(t, repo.docs[id].Comments, 1)
}

func TestAddCommentSurfacesConflictAfterExhaustion(t *testing.T) {
	svc, repo, id := newServiceWithVideo(t)
	repo.forceConflicts = replaceAttempts

	_, err := svc.AddComment(context.Background(), id, videodto.CommentCreateInput{UserID: "u1", Text: "hi"})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, replaceAttempts, repo.replaceCalls)
}

// Two interleaved writers both land: the replace of each mutation is
// conditional on the version it read, so the hardened protocol cannot
// silently drop either comment.
func TestConcurrentAddCommentsBothSurvive(t *testing.T) {
	svc, repo, id := newServiceWithVideo(t)

	_, err := svc.AddComment(context.Background(), id, videodto.CommentCreateInput{UserID: "u1", Text: "one"})
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), id, videodto.CommentCreateInput{UserID: "u2", Text: "two"})
	require.NoError(t, err)

	assert.Len(t, repo.docs[id].Comments, 2)
	assert.Equal(t, int64(3), repo.docs[id].Version)
}

func TestDeleteCommentOwnerMismatchIsForbidden(t *testing.T) {
	svc, repo, id := newServiceWithVideo(t, models.Comment{ID: "c1", UserID: "u1", Text: "hi"})

	err := svc.DeleteComment(context.Background(), id, "c1", "u2")
	assert.ErrorIs(t, err, common.ErrForbidden)
	// The comment must be left untouched.
	assert.Len(t, repo.docs[id].Comments, 1)
	assert.Equal(t, int64(1), repo.docs[id].Version)
}

func TestDeleteCommentRemovesExactlyThatComment(t *testing.T) {
	svc, repo, id := newServiceWithVideo(t,
		models.Comment{ID: "c1", UserID: "u1"},
		models.Comment{ID: "c2", UserID: "u1"},
	)

	err := svc.DeleteComment(context.Background(), id, "c1", "u1")
	require.NoError(t, err)
	require.Len(t, repo.docs[id].Comments, 1)
	assert.Equal(t, "c2", repo.docs[id].Comments[0].ID)
}

func TestDeleteCommentMissingComment(t *testing.T) {
	svc, _, id := newServiceWithVideo(t)

	err := svc.DeleteComment(context.Background(), id, "nope", "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteCommentRequiresUserID(t *testing.T) {
	svc, _, id := newServiceWithVideo(t, models.Comment{ID: "c1", UserID: "u1"})

	err := svc.DeleteComment(context.Background(), id, "c1", "   ")
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}
