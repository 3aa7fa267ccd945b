package controller

import (
	"strconv"

	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// @Summary Create an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param body body service.AssessmentRequest true "Assessment"
// @Success 201 {object} util.Response
// @Router /admin/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.Create(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, assessment)
}

// @Summary List assessments
// @Tags assessments
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /admin/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	assessments, total, err := c.AssessmentService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: assessments, Total: total, Page: page, Limit: limit})
}

// @Summary Get an assessment with its questions
// @Tags assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /admin/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	assessment, questions, err := c.AssessmentService.Get(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{"assessment": assessment, "questions": questions})
}

// @Summary Update an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Param body body service.AssessmentRequest true "Assessment"
// @Success 200 {object} util.Response
// @Router /admin/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.Update(uint(id), req)
	if err != nil {
		if err == util.ErrAssessmentNotFound {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, assessment)
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// @Summary Publish or unpublish an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Param body body publishRequest true "Publish flag"
// @Success 200 {object} util.Response
// @Router /admin/assessments/{id}/publish [patch]
func (c *AssessmentController) SetPublished(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req publishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.SetPublished(uint(id), *req.Published)
	if err != nil {
		switch err {
		case util.ErrAssessmentNotFound:
			util.NotFound(ctx)
		case util.ErrAssessmentEmpty:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, assessment)
}

// @Summary Delete an assessment
// @Description Removes the assessment, its questions and its submissions
// @Tags assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /admin/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	if err := c.AssessmentService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary List published assessments
// @Tags assessments
// @Produce json
// @Success 200 {object} util.Response
// @Router /student/assessments [get]
func (c *AssessmentController) ListPublished(ctx *gin.Context) {
	assessments, err := c.AssessmentService.ListPublished()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, assessments)
}

// @Summary Get an assessment for taking
// @Description Returns the published catalog without mark weights
// @Tags assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /student/assessments/{id} [get]
func (c *AssessmentController) GetForStudent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	view, err := c.AssessmentService.GetForStudent(uint(id))
	if err != nil {
		switch err {
		case util.ErrAssessmentNotFound:
			util.NotFound(ctx)
		case util.ErrAssessmentNotPublished:
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}
