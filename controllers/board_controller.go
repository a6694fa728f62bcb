package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rooluDev/goboard/services"
	"github.com/rooluDev/goboard/utils"
)

// BoardController exposes post CRUD over HTTP. All real coordination lives in
// the service layer; this is routing glue.
type BoardController struct {
	svc *services.BoardService
}

// NewBoardController creates a new BoardController instance.
func NewBoardController(svc *services.BoardService) *BoardController {
	return &BoardController{svc: svc}
}

const listCachePrefix = "cache:posts:list:"

// ListPosts returns paginated posts with optional category/date/keyword filters.
func (b *BoardController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	keyword := strings.TrimSpace(ctx.Query("keyword"))

	filter := services.PostFilter{
		Keyword:  keyword,
		Page:     page,
		PageSize: pageSize,
	}
	if v := ctx.Query("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			utils.Error(ctx, http.StatusBadRequest, 40010, "invalid category")
			return
		}
		filter.CategoryID = id
	}
	if v := ctx.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40011, "invalid from date")
			return
		}
		filter.From = t
	}
	if v := ctx.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40012, "invalid to date")
			return
		}
		filter.To = t.Add(24 * time.Hour)
	}

	// Cache plain category/page listings; keyword searches would explode the
	// key space.
	cacheKey := ""
	if keyword == "" && filter.From.IsZero() && filter.To.IsZero() {
		cacheKey = fmt.Sprintf("%scat=%d:page=%d:size=%d", listCachePrefix, filter.CategoryID, page, pageSize)
		if cached, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	result, err := b.svc.ListPosts(ctx.Request.Context(), filter)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	if cacheKey != "" {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: result}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, result)
}

// GetPost returns one post with comments and attachments and bumps its view
// counter.
func (b *BoardController) GetPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	post, err := b.svc.ViewPost(ctx.Request.Context(), id)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// CreatePost creates a post from a multipart form with up to three files.
func (b *BoardController) CreatePost(ctx *gin.Context) {
	categoryID, err := strconv.ParseInt(ctx.PostForm("category_id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid category id")
		return
	}

	parts, cleanup, err := collectFileParts(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "malformed multipart request")
		return
	}
	defer cleanup()

	post, err := b.svc.CreatePost(ctx.Request.Context(), services.CreatePostInput{
		CategoryID: categoryID,
		Title:      utils.SanitizePlain(ctx.PostForm("title")),
		Content:    utils.Sanitize(ctx.PostForm("content")),
		Author:     utils.SanitizePlain(ctx.PostForm("author")),
		Password:   ctx.PostForm("password"),
		Files:      parts,
	})
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix(listCachePrefix)
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost edits a post's text and attachments from a multipart form.
func (b *BoardController) UpdatePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	deleted, err := parseIDList(ctx.PostFormArray("deleted_file_ids"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40015, "invalid deleted file id")
		return
	}

	parts, cleanup, err := collectFileParts(ctx)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "malformed multipart request")
		return
	}
	defer cleanup()

	post, err := b.svc.UpdatePost(ctx.Request.Context(), services.UpdatePostInput{
		PostID:         id,
		Password:       ctx.PostForm("password"),
		Title:          utils.SanitizePlain(ctx.PostForm("title")),
		Content:        utils.Sanitize(ctx.PostForm("content")),
		DeletedFileIDs: deleted,
		Files:          parts,
	})
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix(listCachePrefix)
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post and everything it owns.
func (b *BoardController) DeletePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40016, "password is required")
		return
	}
	if err := b.svc.DeletePost(ctx.Request.Context(), id, req.Password); err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix(listCachePrefix)
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// VerifyPassword checks the post password without changing anything, so the
// edit form can fail fast.
func (b *BoardController) VerifyPassword(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40016, "password is required")
		return
	}
	match, err := b.svc.VerifyPassword(ctx.Request.Context(), id, req.Password)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"match": match})
}

// collectFileParts opens every submitted file under the "files" field.
// The returned cleanup closes them and must always be called.
func collectFileParts(ctx *gin.Context) ([]services.FilePart, func(), error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	var (
		parts   []services.FilePart
		closers []io.Closer
	)
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, f)
		name := fh.Filename
		if name != "" {
			name = filepath.Base(name)
		}
		parts = append(parts, services.FilePart{Name: name, Size: fh.Size, Reader: f})
	}
	return parts, cleanup, nil
}

func parseIDList(values []string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			id, err := strconv.ParseInt(item, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid id %q", item)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40017, "invalid "+name)
		return 0, false
	}
	return id, true
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}
