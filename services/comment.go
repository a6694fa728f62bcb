package services

import (
	"context"

	"github.com/rooluDev/goboard/models"
)

// CommentService handles comment reads and writes. Comments share their
// post's lifecycle and are removed en masse by the post delete path.
type CommentService struct {
	gw Gateway
}

// NewCommentService returns a comment service backed by the gateway.
func NewCommentService(gw Gateway) *CommentService {
	return &CommentService{gw: gw}
}

// CreateComment adds a comment to an existing post.
func (s *CommentService) CreateComment(ctx context.Context, postID int64, text string) (*models.Comment, error) {
	if err := ValidateID("post", postID); err != nil {
		return nil, err
	}
	text, err := ValidateCommentText(text)
	if err != nil {
		return nil, err
	}
	// The post must exist; a dangling comment is never created.
	if _, err := s.gw.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{PostID: postID, Text: text}
	if err := s.gw.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the comments of a post, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if err := ValidateID("post", postID); err != nil {
		return nil, err
	}
	return s.gw.ListCommentsByPost(ctx, postID)
}

// GetComment returns a single comment.
func (s *CommentService) GetComment(ctx context.Context, commentID int64) (*models.Comment, error) {
	if err := ValidateID("comment", commentID); err != nil {
		return nil, err
	}
	return s.gw.GetComment(ctx, commentID)
}

// UpdateComment edits a comment's text.
func (s *CommentService) UpdateComment(ctx context.Context, commentID int64, text string) error {
	if err := ValidateID("comment", commentID); err != nil {
		return err
	}
	text, err := ValidateCommentText(text)
	if err != nil {
		return err
	}
	if _, err := s.gw.GetComment(ctx, commentID); err != nil {
		return err
	}
	return s.gw.UpdateComment(ctx, commentID, text)
}

// DeleteComment removes a single comment.
func (s *CommentService) DeleteComment(ctx context.Context, commentID int64) error {
	if err := ValidateID("comment", commentID); err != nil {
		return err
	}
	if _, err := s.gw.GetComment(ctx, commentID); err != nil {
		return err
	}
	return s.gw.DeleteComment(ctx, commentID)
}

// CountComments returns the number of comments on a post.
func (s *CommentService) CountComments(ctx context.Context, postID int64) (int64, error) {
	if err := ValidateID("post", postID); err != nil {
		return 0, err
	}
	return s.gw.CountCommentsByPost(ctx, postID)
}
