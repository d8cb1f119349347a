package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// List godoc
// @Summary List submissions, paginated
// @Tags submissions
// @Produce json
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /api/submissions [get]
func (c *SubmissionController) List(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	submissions, pagination, err := c.SubmissionService.List(page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: submissions, Pagination: pagination})
}

// Create godoc
// @Summary Submit work for an assignment
// @Tags submissions
// @Accept json
// @Produce json
// @Param body body service.CreateSubmissionInput true "submission payload"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response "assignment not found"
// @Security BearerAuth
// @Router /api/submissions [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateSubmissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.Create(claims.UserID, input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}

// ListByStudent godoc
// @Summary List one student's submissions
// @Tags submissions
// @Produce json
// @Param id path int true "student id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /api/students/{id}/submissions [get]
func (c *SubmissionController) ListByStudent(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}
	page, limit := pageParams(ctx)

	submissions, pagination, err := c.SubmissionService.ListByStudent(uint(studentID), page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: submissions, Pagination: pagination})
}

// Grade godoc
// @Summary Grade a submission
// @Description Teachers only. Invalidates the student's analytics snapshot.
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path int true "submission id"
// @Param body body service.GradeInput true "grade payload"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/submissions/{id}/grade [post]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	var input service.GradeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.Grade(uint(id), input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	return page, limit
}
