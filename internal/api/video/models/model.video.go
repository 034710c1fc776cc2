package models

import (
	"path"
	"strings"
)

// Field truncation limits. Oversized values are cut silently; truncation
// is not a validation error.
const (
	MaxTitleLen       = 120
	MaxDescriptionLen = 300
	MaxUserIDLen      = 80
	MaxAuthorNameLen  = 40
	MaxCommentTextLen = 800
)

// DefaultAuthorName is used when a comment arrives without a display name.
const DefaultAuthorName = "Anonymous"

// DefaultExtension is the blob name extension when the uploaded file name
// carries none.
const DefaultExtension = "mp4"

// Video is one uploaded video: a blob in the object store plus this
// document. The document id doubles as the store's partition key, so
// every read and replace is a single-partition point operation. After
// creation everything except Comments and Version is immutable.
type Video struct {
	ID          string    `json:"id" bson:"_id"`                 // Server-generated UUID, primary and partition key
	Title       string    `json:"title" bson:"title"`            // Required, truncated to MaxTitleLen
	Description string    `json:"description" bson:"description"`
	BlobName    string    `json:"blobName" bson:"blobName"` // Storage key, {id}.{ext}
	BlobURL     string    `json:"blobUrl" bson:"blobUrl"`   // Locator returned by the object store, stored verbatim
	CreatedAt   int64     `json:"createdAt" bson:"createdAt"` // Unix milliseconds, server-assigned
	Comments    []Comment `json:"comments" bson:"comments"`   // Newest first

	// Version backs the optimistic replace on comment mutations. Not part
	// of the client-facing document.
	Version int64 `json:"-" bson:"version"`
}

// Comment is embedded in exactly one Video and has no independent
// existence or read path.
type Comment struct {
	ID         string `json:"id" bson:"id"`                 // Server-generated UUID
	UserID     string `json:"userId" bson:"userId"`         // Caller-supplied; sole deletion token, exact-string match
	AuthorName string `json:"authorName" bson:"authorName"` // Display label, defaulted when absent
	Text       string `json:"text" bson:"text"`
	CreatedAt  int64  `json:"createdAt" bson:"createdAt"` // Unix milliseconds
}

// Truncate cuts s to at most max characters (runes, not bytes).
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// BlobName derives the storage key for a video id from the uploaded
// file's name: {id}.{extension}, defaulting to mp4 when the name has no
// extension.
func BlobName(id, fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return id + "." + ext
}

// PrependComment inserts c as the first element, keeping newest-first
// order after every mutation.
func (v *Video) PrependComment(c Comment) {
	v.Comments = append([]Comment{c}, v.Comments...)
}

// FindComment returns the comment with the given id.
func (v *Video) FindComment(commentID string) (Comment, bool) {
	for _, c := range v.Comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return Comment{}, false
}

// RemoveComment deletes exactly the comment with the given id. Reports
// whether a comment was removed.
func (v *Video) RemoveComment(commentID string) bool {
	for i, c := range v.Comments {
		if c.ID == commentID {
			v.Comments = append(v.Comments[:i], v.Comments[i+1:]...)
			return true
		}
	}
	return false
}
