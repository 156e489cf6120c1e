package controller

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// Enroll godoc
// @Summary 选课
// @Description 为当前用户创建选课记录，重复选课返回已有记录
// @Tags 选课
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EnrollRequest true "课程"
// @Success 200 {object} util.Response{data=model.CourseEnrollment} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, req.CourseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// GetMyEnrollments godoc
// @Summary 我的选课
// @Description 返回当前用户全部选课记录及课程信息
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CourseEnrollment} "成功"
// @Router /api/enrollments [get]
func (c *EnrollmentController) GetMyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.GetUserEnrollments(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// swagger:model ProgressRequest
type ProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// UpdateProgress godoc
// @Summary 更新学习进度
// @Description 进度取值收敛到 0-100，选课记录不存在时静默成功
// @Tags 选课
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "选课记录ID"
// @Param   body body ProgressRequest true "进度百分比"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/enrollments/{id}/progress [put]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.ownsEnrollment(ctx, id) {
		return
	}

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EnrollmentService.UpdateProgress(id, *req.Progress); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Complete godoc
// @Summary 完成课程
// @Description 标记课程完成并签发结课证书，重复调用幂等
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "选课记录ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/enrollments/{id}/complete [post]
func (c *EnrollmentController) Complete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if !c.ownsEnrollment(ctx, id) {
		return
	}

	if err := c.EnrollmentService.Complete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ownsEnrollment 校验选课记录归属。记录不存在时放行，由服务层静默处理
func (c *EnrollmentController) ownsEnrollment(ctx *gin.Context, id uint) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}

	enrollment, err := c.EnrollmentService.EnrollmentRepo.FindByID(id)
	if err != nil {
		return true
	}

	if enrollment.UserID != claims.UserID && claims.Role != model.Admin {
		util.Forbidden(ctx)
		return false
	}
	return true
}
