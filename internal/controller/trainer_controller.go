package controller

import (
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TrainerController struct {
	TrainerService *service.TrainerService
}

func NewTrainerController(trainerService *service.TrainerService) *TrainerController {
	return &TrainerController{TrainerService: trainerService}
}

// @Summary 教练列表
// @Tags 教练
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/trainers [get]
func (c *TrainerController) ListPublic(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	trainers, total, err := c.TrainerService.List(page, limit, true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: trainers, Total: total, Page: page, Limit: limit})
}

// @Summary 教练列表（管理端）
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/trainers [get]
func (c *TrainerController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	trainers, total, err := c.TrainerService.List(page, limit, false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: trainers, Total: total, Page: page, Limit: limit})
}

// @Summary 创建教练
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Trainer true "教练"
// @Success 201 {object} util.Response
// @Router /api/admin/trainers [post]
func (c *TrainerController) Create(ctx *gin.Context) {
	var trainer model.Trainer
	if err := ctx.ShouldBindJSON(&trainer); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TrainerService.Create(&trainer); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, trainer)
}

// @Summary 更新教练
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "教练ID"
// @Param body body model.Trainer true "教练"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/trainers/{id} [put]
func (c *TrainerController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if _, err := c.TrainerService.Get(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	var trainer model.Trainer
	if err := ctx.ShouldBindJSON(&trainer); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	trainer.ID = id

	if err := c.TrainerService.Update(&trainer); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, trainer)
}

// @Summary 删除教练
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "教练ID"
// @Success 200 {object} util.Response
// @Router /api/admin/trainers/{id} [delete]
func (c *TrainerController) Delete(ctx *gin.Context) {
	if err := c.TrainerService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "trainer deleted"})
}

// @Summary 上传教练照片
// @Tags 管理端
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param photo formData file true "照片"
// @Success 200 {object} util.Response
// @Router /api/admin/trainers/photo [post]
func (c *TrainerController) UploadPhoto(ctx *gin.Context) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		util.BadRequest(ctx, "Photo file is required")
		return
	}

	url, err := c.TrainerService.UploadPhoto(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"photo": url})
}
