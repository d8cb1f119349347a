package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account and returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "registration payload"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response "invalid payload"
// @Failure 409 {object} util.Response "email already registered"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Register(input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "login payload"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 401 {object} util.Response "invalid credentials"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var input service.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
