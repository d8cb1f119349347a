package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PortfolioController struct {
	PortfolioService *service.PortfolioService
}

func NewPortfolioController(portfolioService *service.PortfolioService) *PortfolioController {
	return &PortfolioController{PortfolioService: portfolioService}
}

// ListEvidence godoc
// @Summary List portfolio evidence
// @Tags portfolio
// @Produce json
// @Param student_id query int false "filter by student"
// @Success 200 {object} util.Response{data=[]model.PortfolioEvidence}
// @Security BearerAuth
// @Router /api/portfolio [get]
func (c *PortfolioController) ListEvidence(ctx *gin.Context) {
	if raw := ctx.Query("student_id"); raw != "" {
		studentID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid student id")
			return
		}
		evidence, err := c.PortfolioService.ListEvidenceByStudent(uint(studentID))
		if err != nil {
			util.FromError(ctx, err)
			return
		}
		util.Success(ctx, evidence)
		return
	}

	evidence, err := c.PortfolioService.ListEvidence()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, evidence)
}

// CreateEvidence godoc
// @Summary Add portfolio evidence
// @Description Bumps progress on any tagged learning outcomes.
// @Tags portfolio
// @Accept json
// @Produce json
// @Param body body service.CreateEvidenceInput true "evidence payload"
// @Success 201 {object} util.Response{data=model.PortfolioEvidence}
// @Security BearerAuth
// @Router /api/portfolio [post]
func (c *PortfolioController) CreateEvidence(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateEvidenceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	evidence, err := c.PortfolioService.CreateEvidence(claims.UserID, input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, evidence)
}

// ListSkills godoc
// @Summary List tracked skills
// @Tags portfolio
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Security BearerAuth
// @Router /api/skills [get]
func (c *PortfolioController) ListSkills(ctx *gin.Context) {
	skills, err := c.PortfolioService.ListSkills()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// ListOutcomes godoc
// @Summary List learning outcomes
// @Tags portfolio
// @Produce json
// @Success 200 {object} util.Response{data=[]model.LearningOutcome}
// @Security BearerAuth
// @Router /api/outcomes [get]
func (c *PortfolioController) ListOutcomes(ctx *gin.Context) {
	outcomes, err := c.PortfolioService.ListOutcomes()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, outcomes)
}

// OutcomeProgress godoc
// @Summary One student's learning outcome progress
// @Tags portfolio
// @Produce json
// @Param id path int true "student id"
// @Success 200 {object} util.Response{data=[]model.StudentOutcomeProgress}
// @Security BearerAuth
// @Router /api/students/{id}/outcomes [get]
func (c *PortfolioController) OutcomeProgress(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	progress, err := c.PortfolioService.OutcomeProgress(uint(studentID))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
