package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// List godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param limit query int false "max rows"
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Security BearerAuth
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	notifications, err := c.NotificationService.List(limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

// Create godoc
// @Summary Send a notification to a user
// @Description Teachers and admins only. Pushes a realtime event to the user's room.
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body service.CreateNotificationInput true "notification payload"
// @Success 201 {object} util.Response{data=model.Notification}
// @Security BearerAuth
// @Router /api/notifications [post]
func (c *NotificationController) Create(ctx *gin.Context) {
	var input service.CreateNotificationInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	notification, err := c.NotificationService.Create(input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, notification)
}

// ListByUser godoc
// @Summary List one user's notifications
// @Tags notifications
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Security BearerAuth
// @Router /api/notifications/{id} [get]
func (c *NotificationController) ListByUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	notifications, err := c.NotificationService.ListByUser(uint(userID), limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "notification id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid notification id")
		return
	}

	if err := c.NotificationService.MarkRead(uint(id), claims.UserID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"read": true})
}
