package controller

import (
	"errors"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/internal/util"
	"fitacademy_backend/pkg/monitoring"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	CourseService     *service.CourseService
	ProgressService   *service.ProgressService
}

func NewEnrollmentController(
	enrollmentService *service.EnrollmentService,
	courseService *service.CourseService,
	progressService *service.ProgressService,
) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService: enrollmentService,
		CourseService:     courseService,
		ProgressService:   progressService,
	}
}

// @Summary 提交课程报名付款凭证
// @Description 报名课程并上传付款截图；重复提交会替换截图并重置审核状态
// @Tags 报名
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId formData int true "课程ID"
// @Param screenshot formData file true "付款截图"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) SubmitPayment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.PostForm("courseId"))
	if courseID == 0 {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	file, err := ctx.FormFile("screenshot")
	if err != nil {
		util.UnprocessableEntity(ctx, util.ErrScreenshotRequired.Error())
		return
	}

	enrollment, err := c.EnrollmentService.SubmitPayment(ctx.Request.Context(), user.UserID, courseID, file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrScreenshotRequired),
			errors.Is(err, util.ErrScreenshotTooLarge):
			util.UnprocessableEntity(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.PaymentSubmissionCounter.Inc()
	util.Created(ctx, enrollment)
}

// @Summary 我的报名列表
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.ListByUser(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// @Summary 报名详情
// @Description 返回报名信息和按审核状态裁剪后的课程视图
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "报名ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollmentID := util.MustParseUint(ctx.Param("id"))
	enrollment, err := c.EnrollmentService.GetEnrollment(enrollmentID, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	view, err := c.CourseService.ViewForEnrollment(ctx.Request.Context(), enrollment)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"enrollment": enrollment,
		"course":     view,
	})
}

func (c *EnrollmentController) progressEvent(ctx *gin.Context, complete bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollmentID := util.MustParseUint(ctx.Param("id"))
	topicOrder, err := strconv.Atoi(ctx.Param("order"))
	if err != nil {
		util.BadRequest(ctx, "Invalid topic order")
		return
	}

	var summary *service.ProgressSummary
	if complete {
		summary, err = c.ProgressService.CompleteTopic(enrollmentID, user.UserID, topicOrder)
	} else {
		summary, err = c.ProgressService.StartTopic(enrollmentID, user.UserID, topicOrder)
	}
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound), errors.Is(err, util.ErrTopicNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrContentLocked):
			util.Error(ctx, 403, err.Error())
		case errors.Is(err, util.ErrCourseNotSelfPaced):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, summary)
}

// @Summary 标记章节开始学习
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "报名ID"
// @Param order path int true "章节序号"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id}/topics/{order}/start [post]
func (c *EnrollmentController) StartTopic(ctx *gin.Context) {
	c.progressEvent(ctx, false)
}

// @Summary 标记章节完成
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "报名ID"
// @Param order path int true "章节序号"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id}/topics/{order}/complete [post]
func (c *EnrollmentController) CompleteTopic(ctx *gin.Context) {
	c.progressEvent(ctx, true)
}

type verifyRequest struct {
	Decision string `json:"decision" binding:"required"`
	Reason   string `json:"reason"`
}

// @Summary 审核付款凭证
// @Description 管理员通过或驳回付款凭证；重复通过是幂等操作
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "报名ID"
// @Param body body verifyRequest true "审核决定"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/enrollments/{id}/verify [post]
func (c *EnrollmentController) Verify(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	var req verifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollmentID := util.MustParseUint(ctx.Param("id"))
	enrollment, err := c.EnrollmentService.Verify(enrollmentID, admin.UserID, req.Decision, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidDecision):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.VerificationCounter.WithLabelValues(req.Decision).Inc()
	util.Success(ctx, enrollment)
}

// @Summary 报名列表
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/admin/enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	enrollments, total, err := c.EnrollmentService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  enrollments,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 删除报名
// @Description 级联删除报名、全部进度行和付款截图
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "报名ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/enrollments/{id} [delete]
func (c *EnrollmentController) Delete(ctx *gin.Context) {
	enrollmentID := util.MustParseUint(ctx.Param("id"))
	if err := c.EnrollmentService.Delete(ctx.Request.Context(), enrollmentID); err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "enrollment deleted"})
}
