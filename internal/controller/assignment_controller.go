package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// List godoc
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Security BearerAuth
// @Router /api/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	assignments, err := c.AssignmentService.List()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Create godoc
// @Summary Create an assignment
// @Description Teachers only. Students are notified and a realtime event is broadcast.
// @Tags assignments
// @Accept json
// @Produce json
// @Param body body service.CreateAssignmentInput true "assignment payload"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /api/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateAssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Create(claims.UserID, input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

// ListByTeacher godoc
// @Summary List assignments created by one teacher
// @Tags assignments
// @Produce json
// @Param id path int true "teacher id"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Security BearerAuth
// @Router /api/teachers/{id}/assignments [get]
func (c *AssignmentController) ListByTeacher(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid teacher id")
		return
	}

	assignments, err := c.AssignmentService.ListByTeacher(uint(id))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Stats godoc
// @Summary Grading statistics for one assignment
// @Tags assignments
// @Produce json
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response{data=model.AssignmentStats}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/assignments/{id}/stats [get]
func (c *AssignmentController) Stats(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	stats, err := c.AssignmentService.Stats(uint(id))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
