package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
	DashboardService *service.DashboardService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService, dashboardService *service.DashboardService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService, DashboardService: dashboardService}
}

// StudentAnalytics godoc
// @Summary Analytics snapshot for one student
// @Description Computed from quiz attempts, submissions and reflections; memoized for a short TTL.
// @Tags analytics
// @Produce json
// @Param id path int true "student id"
// @Success 200 {object} util.Response{data=model.StudentSnapshot}
// @Failure 404 {object} util.Response "student not found"
// @Security BearerAuth
// @Router /api/students/{id}/analytics [get]
func (c *AnalyticsController) StudentAnalytics(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	snapshot, err := c.AnalyticsService.StudentSnapshot(uint(studentID))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// RecentActivity godoc
// @Summary One student's merged recent activity feed
// @Tags analytics
// @Produce json
// @Param id path int true "student id"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /api/students/{id}/recent-activity [get]
func (c *AnalyticsController) RecentActivity(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}
	page, limit := pageParams(ctx)

	activity, pagination, err := c.AnalyticsService.RecentActivity(uint(studentID), page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: activity, Pagination: pagination})
}

// Grades godoc
// @Summary One student's grade report
// @Tags analytics
// @Produce json
// @Param id path int true "student id"
// @Success 200 {object} util.Response{data=model.GradeReport}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/students/{id}/grades [get]
func (c *AnalyticsController) Grades(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	report, err := c.AnalyticsService.GradeReport(uint(studentID))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// StudentDashboard godoc
// @Summary One student's dashboard view
// @Tags analytics
// @Produce json
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/students/{id}/dashboard [get]
func (c *AnalyticsController) StudentDashboard(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	dashboard, err := c.DashboardService.StudentDashboard(uint(studentID))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// GlobalAnalytics godoc
// @Summary Course-wide analytics overview
// @Tags analytics
// @Produce json
// @Param timeframe query string false "reporting window, defaults to 30d"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/analytics [get]
func (c *AnalyticsController) GlobalAnalytics(ctx *gin.Context) {
	util.Success(ctx, c.DashboardService.GlobalAnalytics(ctx.Query("timeframe")))
}

// TeacherAnalytics godoc
// @Summary Class-level analytics for one teacher
// @Tags analytics
// @Produce json
// @Param id path int true "teacher id"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/teachers/{id}/analytics [get]
func (c *AnalyticsController) TeacherAnalytics(ctx *gin.Context) {
	teacherID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid teacher id")
		return
	}
	util.Success(ctx, c.DashboardService.TeacherAnalytics(uint(teacherID)))
}

// DashboardAnalytics godoc
// @Summary Admin dashboard chart data
// @Tags analytics
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/dashboard/analytics [get]
func (c *AnalyticsController) DashboardAnalytics(ctx *gin.Context) {
	util.Success(ctx, c.DashboardService.DashboardCharts())
}
