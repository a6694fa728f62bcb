package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rooluDev/goboard/apperr"
	"github.com/rooluDev/goboard/models"
	"github.com/rooluDev/goboard/services"
	"github.com/rooluDev/goboard/utils"
)

func newGateway(t *testing.T) (*GormGateway, *gorm.DB, int64) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "gw.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Post{}, &models.Comment{}, &models.Attachment{},
	))

	cat := models.Category{Name: "general"}
	require.NoError(t, db.Create(&cat).Error)
	return NewGormGateway(db), db, cat.ID
}

func seedPost(t *testing.T, gw *GormGateway, catID int64, title string) *models.Post {
	t.Helper()
	hash, err := utils.HashPassword("abc12345")
	require.NoError(t, err)
	post := &models.Post{
		CategoryID:   catID,
		Title:        title,
		Content:      "content of " + title,
		Author:       "tester",
		PasswordHash: hash,
	}
	require.NoError(t, gw.InsertPost(context.Background(), post))
	return post
}

func TestPostCRUD(t *testing.T) {
	gw, _, catID := newGateway(t)
	ctx := context.Background()

	post := seedPost(t, gw, catID, "hello world")
	require.NotZero(t, post.ID)

	got, err := gw.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "hello world", got.Title)
	require.Equal(t, "general", got.Category.Name)

	require.NoError(t, gw.UpdatePost(ctx, post.ID, "new title here", "new content here"))
	got, err = gw.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "new title here", got.Title)
	require.Equal(t, "new content here", got.Content)

	require.NoError(t, gw.DeletePost(ctx, post.ID))
	_, err = gw.GetPost(ctx, post.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateMissingPost(t *testing.T) {
	gw, _, _ := newGateway(t)

	err := gw.UpdatePost(context.Background(), 42, "some title", "some content")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetPostPreloadsChildren(t *testing.T) {
	gw, _, catID := newGateway(t)
	ctx := context.Background()

	post := seedPost(t, gw, catID, "with children")
	require.NoError(t, gw.InsertComment(ctx, &models.Comment{PostID: post.ID, Text: "c1"}))
	require.NoError(t, gw.InsertComment(ctx, &models.Comment{PostID: post.ID, Text: "c2"}))
	require.NoError(t, gw.InsertAttachment(ctx, &models.Attachment{
		PostID: post.ID, OriginalName: "a.jpg", PhysicalName: "phys-a.jpg",
		Path: "/uploads", Extension: "jpg", Size: 3,
	}))

	got, err := gw.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	require.Equal(t, "c1", got.Comments[0].Text)
	require.Len(t, got.Attachments, 1)
}

func TestVerifyPasswordRoundTrip(t *testing.T) {
	gw, _, catID := newGateway(t)
	ctx := context.Background()

	post := seedPost(t, gw, catID, "secured post")

	ok, err := gw.VerifyPassword(ctx, post.ID, "abc12345")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = gw.VerifyPassword(ctx, post.ID, "zzz99999")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = gw.VerifyPassword(ctx, 9999, "abc12345")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestIncrementViews(t *testing.T) {
	gw, _, catID := newGateway(t)
	ctx := context.Background()

	post := seedPost(t, gw, catID, "counted post")
	require.NoError(t, gw.IncrementViews(ctx, post.ID))
	require.NoError(t, gw.IncrementViews(ctx, post.ID))

	got, err := gw.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Views)

	err = gw.IncrementViews(ctx, 9999)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListPostsFilterAndPaging(t *testing.T) {
	gw, db, catID := newGateway(t)
	ctx := context.Background()

	other := models.Category{Name: "notice"}
	require.NoError(t, db.Create(&other).Error)

	for i := 0; i < 15; i++ {
		seedPost(t, gw, catID, fmt.Sprintf("general post %02d", i))
	}
	seedPost(t, gw, other.ID, "pinned notice")

	// Newest first, page boundaries respected.
	posts, total, err := gw.ListPosts(ctx, services.PostFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(16), total)
	require.Len(t, posts, 10)
	require.Equal(t, "pinned notice", posts[0].Title)

	posts, _, err = gw.ListPosts(ctx, services.PostFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, posts, 6)

	posts, total, err = gw.ListPosts(ctx, services.PostFilter{CategoryID: other.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "pinned notice", posts[0].Title)

	_, total, err = gw.ListPosts(ctx, services.PostFilter{Keyword: "post 07", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	_, total, err = gw.ListPosts(ctx, services.PostFilter{
		From: time.Now().Add(time.Hour), Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), total)
}

func TestCommentCRUD(t *testing.T) {
	gw, _, catID := newGateway(t)
	ctx := context.Background()

	post := seedPost(t, gw, catID, "commented post")

	c := &models.Comment{PostID: post.ID, Text: "hello"}
	require.NoError(t, gw.InsertComment(ctx, c))

	require.NoError(t, gw.UpdateComment(ctx, c.ID, "hello, edited"))
	got, err := gw.GetComment(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "hello, edited", got.Text)

	n, err := gw.CountCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, gw.DeleteCommentsByPost(ctx, post.ID))
	list, err := gw.ListCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAttachmentCRUD(t *testing.T) {
	gw, _, catID := newGateway(t)
	ctx := context.Background()

	post := seedPost(t, gw, catID, "attached post")

	a := &models.Attachment{
		PostID: post.ID, OriginalName: "img.png", PhysicalName: "phys-1.png",
		Path: "/uploads", Extension: "png", Size: 10,
	}
	require.NoError(t, gw.InsertAttachment(ctx, a))
	b := &models.Attachment{
		PostID: post.ID, OriginalName: "doc.pdf", PhysicalName: "phys-2.pdf",
		Path: "/uploads", Extension: "pdf", Size: 20,
	}
	require.NoError(t, gw.InsertAttachment(ctx, b))

	n, err := gw.CountAttachmentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	require.NoError(t, gw.DeleteAttachment(ctx, a.ID))
	_, err = gw.GetAttachment(ctx, a.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	list, err := gw.ListAttachmentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "doc.pdf", list[0].OriginalName)

	require.NoError(t, gw.DeleteAttachmentsByPost(ctx, post.ID))
	n, err = gw.CountAttachmentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func TestCategories(t *testing.T) {
	gw, db, catID := newGateway(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Category{Name: "qna"}).Error)

	cat, err := gw.GetCategory(ctx, catID)
	require.NoError(t, err)
	require.Equal(t, "general", cat.Name)

	_, err = gw.GetCategory(ctx, 9999)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	cats, err := gw.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
}
