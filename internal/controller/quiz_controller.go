package controller

import (
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// List godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Security BearerAuth
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	quizzes, err := c.QuizService.List()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// ListByTeacher godoc
// @Summary List quizzes created by one teacher
// @Tags quizzes
// @Produce json
// @Param id path int true "teacher id"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Security BearerAuth
// @Router /api/teachers/{id}/quizzes [get]
func (c *QuizController) ListByTeacher(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid teacher id")
		return
	}

	quizzes, err := c.QuizService.ListByTeacher(uint(id))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Create godoc
// @Summary Create a quiz with its questions
// @Tags quizzes
// @Accept json
// @Produce json
// @Param body body service.CreateQuizInput true "quiz payload"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateQuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(claims.UserID, input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// Questions godoc
// @Summary List a quiz's questions without answers
// @Tags quizzes
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/quizzes/{id}/questions [get]
func (c *QuizController) Questions(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	questions, err := c.QuizService.Questions(uint(id))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// SubmitAttempt godoc
// @Summary Submit answers for a quiz
// @Description Scores the answers, records the attempt and refreshes the student's analytics.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "quiz id"
// @Param body body service.SubmitAttemptInput true "answers keyed by question id"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var input service.SubmitAttemptInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.QuizService.SubmitAttempt(claims.UserID, uint(id), input)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}
