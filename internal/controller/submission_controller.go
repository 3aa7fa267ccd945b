package controller

import (
	"errors"
	"strconv"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// @Summary Submit an assessment
// @Description Validates, rescores server-side, classifies and persists the submission
// @Tags submissions
// @Accept json
// @Produce json
// @Param body body service.SubmitRequest true "Answer set"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "Malformed or incomplete answer set"
// @Failure 409 {object} util.Response "Assessment already submitted"
// @Failure 503 {object} util.Response "Storage unavailable"
// @Router /student/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.SubjectID == 0 {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.Submit(claims.SubjectID, req)
	if err != nil {
		var vErr *util.ValidationError
		switch {
		case errors.As(err, &vErr):
			util.BadRequest(ctx, vErr.Error())
		case errors.Is(err, util.ErrDuplicateSubmission):
			util.Conflict(ctx, "You have already submitted this assessment")
		case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAssessmentNotPublished), errors.Is(err, util.ErrAssessmentEmpty):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPersistence):
			// Keep storage detail out of the client-facing message.
			util.ServiceUnavailable(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, submission)
}

// @Summary List own submissions
// @Tags submissions
// @Produce json
// @Success 200 {object} util.Response
// @Router /student/submissions [get]
func (c *SubmissionController) ListOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.SubjectID == 0 {
		util.Unauthorized(ctx)
		return
	}

	submissions, err := c.SubmissionService.ListForStudent(claims.SubjectID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, submissions)
}

// @Summary Get a submission
// @Tags submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} util.Response
// @Router /school/submissions/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	submission, err := c.SubmissionService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	// School accounts may only see their own school's submissions.
	claims := util.GetUserFromContext(ctx)
	if claims != nil && claims.Role == model.RoleSchool && claims.SchoolID != submission.SchoolID {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, submission)
}

// @Summary Get own result for one assessment
// @Tags submissions
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /student/assessments/{id}/submission [get]
func (c *SubmissionController) GetOwnForAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.SubjectID == 0 {
		util.Unauthorized(ctx)
		return
	}

	assessmentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	submission, err := c.SubmissionService.GetForStudent(claims.SubjectID, uint(assessmentID))
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}
