package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WSController struct {
	Hub *service.EventHub
}

func NewWSController(hub *service.EventHub) *WSController {
	return &WSController{Hub: hub}
}

// Connect godoc
// @Summary Upgrade to a realtime event stream
// @Description Joins the general room plus the caller's role and personal rooms.
// @Tags ws
// @Success 101 "switching protocols"
// @Security BearerAuth
// @Router /api/ws [get]
func (c *WSController) Connect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	service.ServeWs(c.Hub, ctx.Writer, ctx.Request, claims.UserID, string(claims.Role))
}
