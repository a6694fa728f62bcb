package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rooluDev/goboard/services"
	"github.com/rooluDev/goboard/utils"
)

// CommentController exposes comment CRUD under a post.
type CommentController struct {
	svc *services.CommentService
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(svc *services.CommentService) *CommentController {
	return &CommentController{svc: svc}
}

// List returns a post's comments, oldest first.
func (c *CommentController) List(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	comments, err := c.svc.ListComments(ctx.Request.Context(), id)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comments": comments})
}

// Create adds a comment to a post.
func (c *CommentController) Create(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40019, "text is required")
		return
	}
	comment, err := c.svc.CreateComment(ctx.Request.Context(), id, utils.Sanitize(req.Text))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// Update edits a comment's text.
func (c *CommentController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40019, "text is required")
		return
	}
	if err := c.svc.UpdateComment(ctx.Request.Context(), id, utils.Sanitize(req.Text)); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "comment updated"})
}

// Delete removes one comment.
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}
	if err := c.svc.DeleteComment(ctx.Request.Context(), id); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
