package controller

import (
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactService *service.ContactService
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{ContactService: contactService}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// @Summary 提交留言
// @Tags 联系
// @Accept json
// @Produce json
// @Param body body contactRequest true "留言"
// @Success 201 {object} util.Response
// @Router /api/contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req contactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	message := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := c.ContactService.Submit(message); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"message": "thanks for reaching out"})
}

// @Summary 留言列表
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param unread query bool false "仅未读"
// @Success 200 {object} util.Response
// @Router /api/admin/contact [get]
func (c *ContactController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	messages, total, err := c.ContactService.List(page, limit, ctx.Query("unread") == "true")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: messages, Total: total, Page: page, Limit: limit})
}

// @Summary 标记留言已读
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "留言ID"
// @Success 200 {object} util.Response
// @Router /api/admin/contact/{id}/read [post]
func (c *ContactController) MarkRead(ctx *gin.Context) {
	if err := c.ContactService.MarkRead(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "marked as read"})
}

// @Summary 删除留言
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "留言ID"
// @Success 200 {object} util.Response
// @Router /api/admin/contact/{id} [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	if err := c.ContactService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "message deleted"})
}
