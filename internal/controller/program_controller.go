package controller

import (
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProgramController struct {
	ProgramService *service.ProgramService
}

func NewProgramController(programService *service.ProgramService) *ProgramController {
	return &ProgramController{ProgramService: programService}
}

// @Summary 训练项目列表
// @Tags 项目
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/programs [get]
func (c *ProgramController) ListPublic(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	programs, total, err := c.ProgramService.List(page, limit, true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: programs, Total: total, Page: page, Limit: limit})
}

// @Summary 训练项目列表（管理端）
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/programs [get]
func (c *ProgramController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	programs, total, err := c.ProgramService.List(page, limit, false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: programs, Total: total, Page: page, Limit: limit})
}

// @Summary 创建训练项目
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Program true "项目"
// @Success 201 {object} util.Response
// @Router /api/admin/programs [post]
func (c *ProgramController) Create(ctx *gin.Context) {
	var program model.Program
	if err := ctx.ShouldBindJSON(&program); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgramService.Create(&program); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, program)
}

// @Summary 更新训练项目
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "项目ID"
// @Param body body model.Program true "项目"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/programs/{id} [put]
func (c *ProgramController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if _, err := c.ProgramService.Get(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	var program model.Program
	if err := ctx.ShouldBindJSON(&program); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	program.ID = id

	if err := c.ProgramService.Update(&program); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// @Summary 删除训练项目
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "项目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/programs/{id} [delete]
func (c *ProgramController) Delete(ctx *gin.Context) {
	if err := c.ProgramService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "program deleted"})
}
