package controller

import (
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BlogController struct {
	BlogService *service.BlogService
}

func NewBlogController(blogService *service.BlogService) *BlogController {
	return &BlogController{BlogService: blogService}
}

// @Summary 文章列表
// @Tags 博客
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param search query string false "标题关键词"
// @Success 200 {object} util.Response
// @Router /api/blogs [get]
func (c *BlogController) ListPublic(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	blogs, total, err := c.BlogService.List(page, limit, true, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: blogs, Total: total, Page: page, Limit: limit})
}

// @Summary 文章详情
// @Tags 博客
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/blogs/{id} [get]
func (c *BlogController) GetPublic(ctx *gin.Context) {
	blog, err := c.BlogService.Get(util.MustParseUint(ctx.Param("id")), true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, blog)
}

// @Summary 文章列表（管理端，含未发布）
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/blogs [get]
func (c *BlogController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	blogs, total, err := c.BlogService.List(page, limit, false, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: blogs, Total: total, Page: page, Limit: limit})
}

// @Summary 创建文章
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Blog true "文章"
// @Success 201 {object} util.Response
// @Router /api/admin/blogs [post]
func (c *BlogController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var blog model.Blog
	if err := ctx.ShouldBindJSON(&blog); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	blog.AuthorID = claims.UserID

	if err := c.BlogService.Create(&blog); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, blog)
}

// @Summary 更新文章
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "文章ID"
// @Param body body model.Blog true "文章"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/blogs/{id} [put]
func (c *BlogController) Update(ctx *gin.Context) {
	existing, err := c.BlogService.Get(util.MustParseUint(ctx.Param("id")), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	var blog model.Blog
	if err := ctx.ShouldBindJSON(&blog); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	blog.ID = existing.ID
	blog.AuthorID = existing.AuthorID

	if err := c.BlogService.Update(&blog); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, blog)
}

// @Summary 删除文章
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "文章ID"
// @Success 200 {object} util.Response
// @Router /api/admin/blogs/{id} [delete]
func (c *BlogController) Delete(ctx *gin.Context) {
	if err := c.BlogService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "blog deleted"})
}

// @Summary 上传文章封面
// @Tags 管理端
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param cover formData file true "封面图片"
// @Success 200 {object} util.Response
// @Router /api/admin/blogs/cover [post]
func (c *BlogController) UploadCover(ctx *gin.Context) {
	file, err := ctx.FormFile("cover")
	if err != nil {
		util.BadRequest(ctx, "Cover file is required")
		return
	}

	url, err := c.BlogService.UploadCover(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"cover": url})
}
