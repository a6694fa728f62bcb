package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rooluDev/goboard/services"
	"github.com/rooluDev/goboard/utils"
)

// AttachmentController exposes attachment upload, delete and download.
type AttachmentController struct {
	svc *services.BoardService
}

// NewAttachmentController creates a new AttachmentController instance.
func NewAttachmentController(svc *services.BoardService) *AttachmentController {
	return &AttachmentController{svc: svc}
}

// Download streams an attachment's bytes with the original filename. A row
// whose physical file is gone yields 404, not 500.
func (a *AttachmentController) Download(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	att, rc, size, err := a.svc.DownloadAttachment(ctx.Request.Context(), id)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	defer rc.Close()

	// RFC 5987 encoding so non-ASCII original names survive.
	encoded := strings.ReplaceAll(url.QueryEscape(att.OriginalName), "+", "%20")
	ctx.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
	ctx.DataFromReader(http.StatusOK, size, "application/octet-stream", rc, nil)
}

// Upload adds files to an existing post, guarded by the post password.
func (a *AttachmentController) Upload(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	parts, cleanup, err := collectFileParts(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "malformed multipart request")
		return
	}
	defer cleanup()

	atts, err := a.svc.UploadAttachments(ctx.Request.Context(), id, ctx.PostForm("password"), parts)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"attachments": atts})
}

// Delete removes selected attachments of a post, guarded by the post password.
func (a *AttachmentController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Password string  `json:"password" binding:"required"`
		FileIDs  []int64 `json:"file_ids" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40018, "password and file_ids are required")
		return
	}
	if err := a.svc.DeleteAttachments(ctx.Request.Context(), id, req.Password, req.FileIDs); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "attachments deleted"})
}
