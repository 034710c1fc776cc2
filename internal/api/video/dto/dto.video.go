package videodto

// CommentCreateInput is the request body for adding a comment.
type CommentCreateInput struct {
	UserID     string `json:"userId" validate:"required"`
	AuthorName string `json:"authorName,omitempty"`
	Text       string `json:"text" validate:"required"`
}

// CommentDeleteInput is the request body for deleting a comment. The
// userId must equal the stored comment's userId exactly; there is no
// other authorization.
type CommentDeleteInput struct {
	UserID string `json:"userId" validate:"required"`
}

// VideoListItem is the list projection of a video. Comments are excluded
// to bound the response size.
type VideoListItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BlobName    string `json:"blobName"`
	BlobURL     string `json:"blobUrl"`
	CreatedAt   int64  `json:"createdAt"`
}
