package controller

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserRepo *repository.UserRepository
}

func NewUserController(userRepo *repository.UserRepository) *UserController {
	return &UserController{UserRepo: userRepo}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "max rows"
// @Success 200 {object} util.Response{data=[]model.User}
// @Security BearerAuth
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	users, err := c.UserRepo.ListAll(limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ListStudents godoc
// @Summary List students
// @Tags users
// @Produce json
// @Success 200 {object} util.Response{data=[]model.User}
// @Security BearerAuth
// @Router /api/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	students, err := c.UserRepo.ListByRole(model.Student)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, students)
}
