package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/rooluDev/goboard/apperr"
	"github.com/rooluDev/goboard/models"
	"github.com/rooluDev/goboard/utils"
)

// BoardService coordinates post mutations across the relational store and the
// attachment filesystem. The relational writes are the authority; the
// filesystem is a best-effort byte store keyed by unique names and cleaned up
// opportunistically. Each operation runs to completion within the call; there
// is no persisted intermediate state.
type BoardService struct {
	gw    Gateway
	store Store
	gate  *PasswordGate
	log   *zap.SugaredLogger
}

// NewBoardService wires the coordinator with its collaborators.
func NewBoardService(gw Gateway, store Store, logger *zap.SugaredLogger) *BoardService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BoardService{
		gw:    gw,
		store: store,
		gate:  NewPasswordGate(gw),
		log:   logger,
	}
}

// CreatePostInput carries a new post and its candidate attachments.
type CreatePostInput struct {
	CategoryID int64
	Title      string
	Content    string
	Author     string
	Password   string
	Files      []FilePart
}

// CreatePost validates the input, inserts the post row and then saves each
// attachment (bytes, then row). The post insert is the commit point: if any
// attachment step fails afterwards, everything written so far is compensated
// and the original error is re-raised, so the caller never sees a
// half-created post.
func (s *BoardService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := ValidateCategoryID(in.CategoryID); err != nil {
		return nil, err
	}
	title, err := ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	content, err := ValidateContent(in.Content)
	if err != nil {
		return nil, err
	}
	author, err := ValidateAuthor(in.Author)
	if err != nil {
		return nil, err
	}
	password, err := ValidatePassword(in.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.gw.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	// Reject every invalid file before any write happens.
	files := actualParts(in.Files)
	if err := s.store.ValidateCount(len(files)); err != nil {
		return nil, err
	}
	exts := make([]string, len(files))
	for i, f := range files {
		ext, err := s.store.ValidateCandidate(f.Name, f.Size)
		if err != nil {
			return nil, err
		}
		exts[i] = ext
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "hash password", err)
	}

	post := &models.Post{
		CategoryID:   in.CategoryID,
		Title:        title,
		Content:      content,
		Author:       author,
		PasswordHash: hash,
	}
	if err := s.gw.InsertPost(ctx, post); err != nil {
		return nil, err
	}

	attached, err := s.saveBatch(ctx, post.ID, files, exts)
	if err != nil {
		s.compensateCreate(ctx, post.ID)
		return nil, err
	}
	post.Attachments = attached
	return post, nil
}

// compensateCreate unwinds a failed create after the post row was inserted.
// Rows go first, then bytes; the post row last. A failed compensating delete
// of the post row leaves a half-created post behind, which is reported loudly
// rather than retried.
func (s *BoardService) compensateCreate(ctx context.Context, postID int64) {
	atts, err := s.gw.ListAttachmentsByPost(ctx, postID)
	if err != nil {
		s.log.Errorw("compensation: failed to list attachments", "post_id", postID, "error", err)
		atts = nil
	}
	if err := s.gw.DeleteAttachmentsByPost(ctx, postID); err != nil {
		s.log.Errorw("compensation: failed to delete attachment rows", "post_id", postID, "error", err)
	}
	for _, a := range atts {
		s.store.Delete(a.PhysicalName)
	}
	if err := s.gw.DeletePost(ctx, postID); err != nil {
		s.log.Errorw("FATAL: failed to roll back post after attachment failure; post row is orphaned",
			"post_id", postID, "error", err)
	}
}

// UpdatePostInput carries a textual edit plus attachment changes.
type UpdatePostInput struct {
	PostID         int64
	Password       string
	Title          string
	Content        string
	DeletedFileIDs []int64
	Files          []FilePart
}

// UpdatePost edits a post after password authorization. The row update is the
// commit point for the text and is never rolled back: attachment changes
// after it are best-effort and a mid-batch failure is reported as a
// distinguishable file-upload error meaning "text updated, attachments
// partially applied".
func (s *BoardService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := ValidateID("post", in.PostID); err != nil {
		return nil, err
	}
	password, err := ValidatePassword(in.Password)
	if err != nil {
		return nil, err
	}
	title, err := ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	content, err := ValidateContent(in.Content)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Authorize(ctx, in.PostID, password); err != nil {
		return nil, err
	}

	// The cap is enforced against the post-operation total, so mixing
	// deletions and additions in one request cannot exceed it.
	files := actualParts(in.Files)
	exts := make([]string, len(files))
	for i, f := range files {
		ext, err := s.store.ValidateCandidate(f.Name, f.Size)
		if err != nil {
			return nil, err
		}
		exts[i] = ext
	}
	// Only deletions that will actually happen may count against the cap, so
	// the requested ids are resolved to owned rows first.
	deletions, err := s.resolveDeletions(ctx, in.PostID, in.DeletedFileIDs)
	if err != nil {
		return nil, err
	}
	current, err := s.gw.CountAttachmentsByPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	total := int(current) - len(deletions) + len(files)
	if err := s.store.ValidateCount(total); err != nil {
		return nil, err
	}

	// Commit point for the textual edit.
	if err := s.gw.UpdatePost(ctx, in.PostID, title, content); err != nil {
		return nil, err
	}

	if err := s.removeAttachments(ctx, deletions); err != nil {
		return nil, err
	}

	if _, err := s.saveBatch(ctx, in.PostID, files, exts); err != nil {
		return nil, apperr.Wrap(apperr.KindFileUpload,
			"post text updated but attachments were only partially applied", err)
	}

	return s.GetPost(ctx, in.PostID)
}

// DeletePost removes a post with all of its comments and attachments after
// password authorization. Children go first so an interruption never leaves
// an orphan referencing a missing parent; physical files are removed after
// their rows and only best-effort.
func (s *BoardService) DeletePost(ctx context.Context, postID int64, password string) error {
	if err := ValidateID("post", postID); err != nil {
		return err
	}
	pw, err := ValidatePassword(password)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, postID, pw); err != nil {
		return err
	}

	if err := s.gw.DeleteCommentsByPost(ctx, postID); err != nil {
		return err
	}

	atts, err := s.gw.ListAttachmentsByPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.gw.DeleteAttachmentsByPost(ctx, postID); err != nil {
		return err
	}
	for _, a := range atts {
		s.store.Delete(a.PhysicalName)
	}

	return s.gw.DeletePost(ctx, postID)
}

// GetPost returns a post with its category, comments and attachments.
func (s *BoardService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	if err := ValidateID("post", postID); err != nil {
		return nil, err
	}
	return s.gw.GetPost(ctx, postID)
}

// ViewPost returns a post and bumps its view counter.
func (s *BoardService) ViewPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.gw.IncrementViews(ctx, postID); err != nil {
		return nil, err
	}
	post.Views++
	return post, nil
}

// ListPosts returns one page of posts matching the filter.
func (s *BoardService) ListPosts(ctx context.Context, filter PostFilter) (*PostPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 10
	}
	items, total, err := s.gw.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PostPage{
		Items:      items,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize)),
	}, nil
}

// VerifyPassword reports whether the submitted plaintext matches the post
// password without mutating anything.
func (s *BoardService) VerifyPassword(ctx context.Context, postID int64, password string) (bool, error) {
	if err := ValidateID("post", postID); err != nil {
		return false, err
	}
	pw, err := ValidatePassword(password)
	if err != nil {
		return false, err
	}
	return s.gw.VerifyPassword(ctx, postID, pw)
}

// UploadAttachments adds files to an existing post after password
// authorization, enforcing the cap against the resulting total.
func (s *BoardService) UploadAttachments(ctx context.Context, postID int64, password string, parts []FilePart) ([]models.Attachment, error) {
	if err := ValidateID("post", postID); err != nil {
		return nil, err
	}
	pw, err := ValidatePassword(password)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, postID, pw); err != nil {
		return nil, err
	}

	files := actualParts(parts)
	exts := make([]string, len(files))
	for i, f := range files {
		ext, err := s.store.ValidateCandidate(f.Name, f.Size)
		if err != nil {
			return nil, err
		}
		exts[i] = ext
	}
	current, err := s.gw.CountAttachmentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.store.ValidateCount(int(current) + len(files)); err != nil {
		return nil, err
	}

	return s.saveBatch(ctx, postID, files, exts)
}

// DeleteAttachments removes the given attachments of a post after password
// authorization.
func (s *BoardService) DeleteAttachments(ctx context.Context, postID int64, password string, ids []int64) error {
	if err := ValidateID("post", postID); err != nil {
		return err
	}
	pw, err := ValidatePassword(password)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, postID, pw); err != nil {
		return err
	}
	atts, err := s.resolveDeletions(ctx, postID, ids)
	if err != nil {
		return err
	}
	return s.removeAttachments(ctx, atts)
}

// DownloadAttachment resolves an attachment row and opens its physical file.
// A row whose bytes are missing (for example raced by a concurrent delete)
// reports not-found, never a server error. The returned size is what is on
// disk right now, which is what the response must declare; the row's recorded
// size is the submitted one and can lag behind.
func (s *BoardService) DownloadAttachment(ctx context.Context, fileID int64) (*models.Attachment, io.ReadCloser, int64, error) {
	if err := ValidateID("file", fileID); err != nil {
		return nil, nil, 0, err
	}
	att, err := s.gw.GetAttachment(ctx, fileID)
	if err != nil {
		return nil, nil, 0, err
	}
	rc, size, err := s.store.Open(att.PhysicalName)
	if err != nil {
		return nil, nil, 0, err
	}
	return att, rc, size, nil
}

// ListCategories returns all categories for the post form.
func (s *BoardService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.gw.ListCategories(ctx)
}

// saveBatch saves each file's bytes and inserts its row, in order. On any
// failure it compensates only what this batch wrote (rows first, then bytes)
// and returns the original error.
func (s *BoardService) saveBatch(ctx context.Context, postID int64, files []FilePart, exts []string) ([]models.Attachment, error) {
	var (
		inserted []models.Attachment
		saved    []string
	)
	fail := func(orig error) ([]models.Attachment, error) {
		for _, a := range inserted {
			if err := s.gw.DeleteAttachment(ctx, a.ID); err != nil {
				s.log.Errorw("compensation: failed to delete attachment row",
					"attachment_id", a.ID, "post_id", postID, "error", err)
			}
		}
		for _, name := range saved {
			s.store.Delete(name)
		}
		return nil, orig
	}

	for i, f := range files {
		phys := s.store.GeneratePhysicalName(exts[i])
		if err := s.store.Save(f.Reader, phys); err != nil {
			return fail(err)
		}
		saved = append(saved, phys)

		att := models.Attachment{
			PostID:       postID,
			OriginalName: f.Name,
			PhysicalName: phys,
			Path:         WebPath,
			Extension:    exts[i],
			Size:         f.Size,
		}
		if err := s.gw.InsertAttachment(ctx, &att); err != nil {
			return fail(err)
		}
		inserted = append(inserted, att)
	}
	return inserted, nil
}

// resolveDeletions maps requested attachment ids to the distinct rows the
// post actually owns. Ids that are unknown, repeated or belong to another
// post are dropped here, so the cap check and the delete loop always see the
// same set.
func (s *BoardService) resolveDeletions(ctx context.Context, postID int64, ids []int64) ([]models.Attachment, error) {
	seen := make(map[int64]struct{}, len(ids))
	var out []models.Attachment
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		att, err := s.gw.GetAttachment(ctx, id)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				continue // already gone
			}
			return nil, err
		}
		if att.PostID != postID {
			s.log.Warnw("refusing to delete attachment of another post",
				"attachment_id", id, "post_id", postID, "owner_post_id", att.PostID)
			continue
		}
		out = append(out, *att)
	}
	return out, nil
}

// removeAttachments deletes resolved attachment rows and then their physical
// files. The row goes first on purpose: a row with missing bytes is
// detectable and reads as not-found, while a file with no row is invisible
// garbage.
func (s *BoardService) removeAttachments(ctx context.Context, atts []models.Attachment) error {
	for _, att := range atts {
		if err := s.gw.DeleteAttachment(ctx, att.ID); err != nil {
			return err
		}
		s.store.Delete(att.PhysicalName)
	}
	return nil
}
