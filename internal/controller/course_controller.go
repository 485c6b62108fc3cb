package controller

import (
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary 课程列表
// @Description 公开接口只返回已发布课程，不含章节内容
// @Tags 课程
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param search query string false "标题关键词"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListPublic(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	courses, total, err := c.CourseService.ListCourses(page, limit, true, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	summaries := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, gin.H{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"type":        course.Type,
			"price":       course.Price,
			"topicCount":  len(course.Topics),
		})
	}

	util.Success(ctx, util.PageResponse{
		List:  summaries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 课程详情（公开）
// @Description 自学课程的章节内容对未报名读者始终锁定
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetPublic(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	view, err := c.CourseService.PublicView(ctx.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 课程列表（管理端）
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param search query string false "标题关键词"
// @Success 200 {object} util.Response
// @Router /api/admin/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	courses, total, err := c.CourseService.ListCourses(page, limit, false, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 课程详情（管理端）
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	course, err := c.CourseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 创建课程
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Course true "课程"
// @Success 201 {object} util.Response
// @Router /api/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if course.Type != model.Guided && course.Type != model.SelfPaced {
		util.BadRequest(ctx, "Invalid course type")
		return
	}

	if err := c.CourseService.CreateCourse(&course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 更新课程
// @Description 整体替换章节和大纲，随后清除缓存
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body model.Course true "课程"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course.ID = util.MustParseUint(ctx.Param("id"))

	exists, err := c.CourseService.CourseRepo.Exists(course.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !exists {
		util.NotFound(ctx)
		return
	}

	if err := c.CourseService.UpdateCourse(ctx.Request.Context(), &course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	if err := c.CourseService.DeleteCourse(ctx.Request.Context(), courseID); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "course deleted"})
}
