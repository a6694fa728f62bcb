// Package repository implements the persistence gateway on top of gorm.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rooluDev/goboard/apperr"
	"github.com/rooluDev/goboard/models"
	"github.com/rooluDev/goboard/services"
	"github.com/rooluDev/goboard/utils"
)

// GormGateway is the gorm-backed persistence gateway.
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway returns a gateway using the given database handle.
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

var _ services.Gateway = (*GormGateway)(nil)

// classify maps gorm errors onto the shared taxonomy.
func classify(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.KindNotFound, "%s not found", entity)
	}
	return apperr.Wrap(apperr.KindPersistence, entity+" query failed", err)
}

func (g *GormGateway) InsertPost(ctx context.Context, post *models.Post) error {
	return classify("post", g.db.WithContext(ctx).Create(post).Error)
}

func (g *GormGateway) UpdatePost(ctx context.Context, id int64, title, content string) error {
	var post models.Post
	if err := g.db.WithContext(ctx).Select("id").First(&post, id).Error; err != nil {
		return classify("post", err)
	}
	err := g.db.WithContext(ctx).Model(&models.Post{ID: id}).
		Updates(models.Post{Title: title, Content: content}).Error
	return classify("post", err)
}

func (g *GormGateway) DeletePost(ctx context.Context, id int64) error {
	return classify("post", g.db.WithContext(ctx).Delete(&models.Post{}, id).Error)
}

func (g *GormGateway) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := g.db.WithContext(ctx).
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("Attachments").
		First(&post, id).Error
	if err != nil {
		return nil, classify("post", err)
	}
	return &post, nil
}

func (g *GormGateway) ListPosts(ctx context.Context, filter services.PostFilter) ([]models.Post, int64, error) {
	query := g.db.WithContext(ctx).Model(&models.Post{})
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR content LIKE ? OR author LIKE ?", like, like, like)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify("post", err)
	}

	var posts []models.Post
	err := query.
		Preload("Category").
		Preload("Attachments").
		Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, classify("post", err)
	}
	return posts, total, nil
}

func (g *GormGateway) IncrementViews(ctx context.Context, id int64) error {
	res := g.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return classify("post", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "post not found")
	}
	return nil
}

func (g *GormGateway) VerifyPassword(ctx context.Context, id int64, plaintext string) (bool, error) {
	var post models.Post
	if err := g.db.WithContext(ctx).Select("id", "password_hash").First(&post, id).Error; err != nil {
		return false, classify("post", err)
	}
	return utils.CheckPassword(post.PasswordHash, plaintext), nil
}

func (g *GormGateway) InsertComment(ctx context.Context, comment *models.Comment) error {
	return classify("comment", g.db.WithContext(ctx).Create(comment).Error)
}

func (g *GormGateway) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := g.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, classify("comment", err)
	}
	return &comment, nil
}

func (g *GormGateway) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := g.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, classify("comment", err)
	}
	return comments, nil
}

func (g *GormGateway) UpdateComment(ctx context.Context, id int64, text string) error {
	err := g.db.WithContext(ctx).Model(&models.Comment{ID: id}).
		Updates(models.Comment{Text: text}).Error
	return classify("comment", err)
}

func (g *GormGateway) DeleteComment(ctx context.Context, id int64) error {
	return classify("comment", g.db.WithContext(ctx).Delete(&models.Comment{}, id).Error)
}

func (g *GormGateway) DeleteCommentsByPost(ctx context.Context, postID int64) error {
	err := g.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error
	return classify("comment", err)
}

func (g *GormGateway) CountCommentsByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, classify("comment", err)
	}
	return count, nil
}

func (g *GormGateway) InsertAttachment(ctx context.Context, att *models.Attachment) error {
	return classify("attachment", g.db.WithContext(ctx).Create(att).Error)
}

func (g *GormGateway) GetAttachment(ctx context.Context, id int64) (*models.Attachment, error) {
	var att models.Attachment
	if err := g.db.WithContext(ctx).First(&att, id).Error; err != nil {
		return nil, classify("attachment", err)
	}
	return &att, nil
}

func (g *GormGateway) ListAttachmentsByPost(ctx context.Context, postID int64) ([]models.Attachment, error) {
	var atts []models.Attachment
	err := g.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&atts).Error
	if err != nil {
		return nil, classify("attachment", err)
	}
	return atts, nil
}

func (g *GormGateway) CountAttachmentsByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Attachment{}).
		Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, classify("attachment", err)
	}
	return count, nil
}

func (g *GormGateway) DeleteAttachment(ctx context.Context, id int64) error {
	return classify("attachment", g.db.WithContext(ctx).Delete(&models.Attachment{}, id).Error)
}

func (g *GormGateway) DeleteAttachmentsByPost(ctx context.Context, postID int64) error {
	err := g.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Attachment{}).Error
	return classify("attachment", err)
}

func (g *GormGateway) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var cat models.Category
	if err := g.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, classify("category", err)
	}
	return &cat, nil
}

func (g *GormGateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := g.db.WithContext(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, classify("category", err)
	}
	return cats, nil
}
