package controller

import (
	"errors"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GalleryController struct {
	GalleryService *service.GalleryService
}

func NewGalleryController(galleryService *service.GalleryService) *GalleryController {
	return &GalleryController{GalleryService: galleryService}
}

// @Summary 图库列表
// @Tags 图库
// @Produce json
// @Param type query string false "媒体类型 image|video"
// @Success 200 {object} util.Response
// @Router /api/gallery [get]
func (c *GalleryController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	items, total, err := c.GalleryService.List(page, limit, ctx.Query("type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// @Summary 上传图库媒体
// @Description 视频会自动生成封面并记录时长
// @Tags 管理端
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string false "标题"
// @Param media formData file true "图片或视频"
// @Success 201 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/admin/gallery [post]
func (c *GalleryController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("media")
	if err != nil {
		util.BadRequest(ctx, "Media file is required")
		return
	}

	item, err := c.GalleryService.UploadMedia(ctx.Request.Context(), ctx.PostForm("title"), file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidMediaExt), errors.Is(err, util.ErrMediaTooLarge):
			util.UnprocessableEntity(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, item)
}

// @Summary 删除图库媒体
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "媒体ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/gallery/{id} [delete]
func (c *GalleryController) Delete(ctx *gin.Context) {
	if err := c.GalleryService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrMediaNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "media deleted"})
}
