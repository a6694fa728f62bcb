package services

import (
	"context"
	"io"
	"time"

	"github.com/rooluDev/goboard/models"
)

// Gateway is the persistence contract the board services are written
// against. Implementations classify failures with apperr kinds: a missing
// row is KindNotFound, anything else unexpected is KindPersistence.
type Gateway interface {
	// Posts
	InsertPost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, id int64, title, content string) error
	DeletePost(ctx context.Context, id int64) error
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, int64, error)
	IncrementViews(ctx context.Context, id int64) error
	// VerifyPassword performs the opaque one-way comparison of a submitted
	// plaintext against the stored hash. The plaintext never leaves this call.
	VerifyPassword(ctx context.Context, id int64, plaintext string) (bool, error)

	// Comments
	InsertComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id int64, text string) error
	DeleteComment(ctx context.Context, id int64) error
	DeleteCommentsByPost(ctx context.Context, postID int64) error
	CountCommentsByPost(ctx context.Context, postID int64) (int64, error)

	// Attachments
	InsertAttachment(ctx context.Context, att *models.Attachment) error
	GetAttachment(ctx context.Context, id int64) (*models.Attachment, error)
	ListAttachmentsByPost(ctx context.Context, postID int64) ([]models.Attachment, error)
	CountAttachmentsByPost(ctx context.Context, postID int64) (int64, error)
	DeleteAttachment(ctx context.Context, id int64) error
	DeleteAttachmentsByPost(ctx context.Context, postID int64) error

	// Categories
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// PostFilter narrows and pages a post listing.
type PostFilter struct {
	CategoryID int64 // 0 means all categories
	Keyword    string
	From       time.Time // zero means unbounded
	To         time.Time
	Page       int
	PageSize   int
}

// PostPage is one page of a post listing.
type PostPage struct {
	Items      []models.Post `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// FilePart is a single submitted multipart file. Parts with an empty Name are
// empty form inputs, not attachments, and are skipped everywhere.
type FilePart struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// actualParts drops parts with an empty submitted filename.
func actualParts(parts []FilePart) []FilePart {
	out := make([]FilePart, 0, len(parts))
	for _, p := range parts {
		if p.Name != "" {
			out = append(out, p)
		}
	}
	return out
}
