package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// CalendarController serves deadline views derived from assignments.
type CalendarController struct {
	AssignmentService *service.AssignmentService
}

func NewCalendarController(assignmentService *service.AssignmentService) *CalendarController {
	return &CalendarController{AssignmentService: assignmentService}
}

// Month godoc
// @Summary Assignment deadlines for one month
// @Tags calendar
// @Produce json
// @Param userId path int true "user id"
// @Param year query int false "year, defaults to current"
// @Param month query int false "month 1-12, defaults to current"
// @Success 200 {object} util.Response{data=[]model.CalendarEvent}
// @Security BearerAuth
// @Router /api/calendar/{userId} [get]
func (c *CalendarController) Month(ctx *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	monthNum, _ := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if monthNum < 1 || monthNum > 12 {
		util.BadRequest(ctx, "month must be 1-12")
		return
	}

	events, err := c.AssignmentService.Calendar(year, time.Month(monthNum))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// Upcoming godoc
// @Summary Deadlines in the next days
// @Tags calendar
// @Produce json
// @Param userId path int true "user id"
// @Param days query int false "lookahead window, defaults to 7"
// @Success 200 {object} util.Response{data=[]model.CalendarEvent}
// @Security BearerAuth
// @Router /api/calendar/{userId}/upcoming [get]
func (c *CalendarController) Upcoming(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "7"))
	events, err := c.AssignmentService.Upcoming(days)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, events)
}
