package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/rooluDev/goboard/services"
	"github.com/rooluDev/goboard/utils"
)

// CategoryController serves the category list for the post form.
type CategoryController struct {
	svc *services.BoardService
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(svc *services.BoardService) *CategoryController {
	return &CategoryController{svc: svc}
}

// List returns all categories.
func (c *CategoryController) List(ctx *gin.Context) {
	cats, err := c.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"categories": cats})
}
