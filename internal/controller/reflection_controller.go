package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReflectionController struct {
	ReflectionService *service.ReflectionService
}

func NewReflectionController(reflectionService *service.ReflectionService) *ReflectionController {
	return &ReflectionController{ReflectionService: reflectionService}
}

// List godoc
// @Summary List reflections
// @Tags reflections
// @Produce json
// @Param limit query int false "max rows"
// @Success 200 {object} util.Response{data=[]model.Reflection}
// @Security BearerAuth
// @Router /api/reflections [get]
func (c *ReflectionController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	reflections, err := c.ReflectionService.List(limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, reflections)
}

// Create godoc
// @Summary Create a reflection
// @Description Broadcasts a realtime event to the teacher room.
// @Tags reflections
// @Accept json
// @Produce json
// @Param body body service.CreateReflectionInput true "reflection payload"
// @Success 201 {object} util.Response{data=model.Reflection}
// @Security BearerAuth
// @Router /api/reflections [post]
func (c *ReflectionController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateReflectionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reflection, err := c.ReflectionService.Create(claims.UserID, input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, reflection)
}

// ListByStudent godoc
// @Summary List one student's reflections
// @Tags reflections
// @Produce json
// @Param id path int true "student id"
// @Success 200 {object} util.Response{data=[]model.Reflection}
// @Security BearerAuth
// @Router /api/students/{id}/reflections [get]
func (c *ReflectionController) ListByStudent(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	reflections, err := c.ReflectionService.ListByStudent(uint(studentID))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, reflections)
}
