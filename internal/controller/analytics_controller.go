package controller

import (
	"strconv"
	"time"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// parseFilter reads the optional query dimensions. School accounts are
// always pinned to their own school regardless of what they send.
func parseFilter(ctx *gin.Context) (repository.SubmissionFilter, bool) {
	var f repository.SubmissionFilter

	claims := util.GetUserFromContext(ctx)
	if claims != nil && claims.Role == model.RoleSchool {
		f.SchoolID = claims.SchoolID
	} else if v := ctx.Query("schoolId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return f, false
		}
		f.SchoolID = uint(id)
	}

	if v := ctx.Query("assessmentId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return f, false
		}
		f.AssessmentID = uint(id)
	}

	if v := ctx.Query("bucket"); v != "" {
		b := model.Bucket(v)
		if !b.Valid() {
			return f, false
		}
		f.Bucket = b
	}

	f.Class = ctx.Query("class")
	f.Section = ctx.Query("section")
	f.Search = ctx.Query("search")

	if v := ctx.Query("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, false
		}
		f.StartDate = &t
	}
	if v := ctx.Query("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, false
		}
		// Inclusive end of day.
		end := t.Add(24*time.Hour - time.Second)
		f.EndDate = &end
	}

	return f, true
}

// @Summary Aggregate submission analytics
// @Description Summarizes submissions matching the filters: counts, averages, bucket distribution, breakdowns and recent submissions
// @Tags analytics
// @Produce json
// @Param schoolId query int false "Restrict to one school (admin only)"
// @Param assessmentId query int false "Restrict to one assessment"
// @Param bucket query string false "Restrict to one overall bucket" Enums(Stable, Emerging, SupportNeeded)
// @Param class query string false "Restrict by student class"
// @Param section query string false "Restrict by student class section"
// @Param search query string false "Match student name or access ID"
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} util.Response
// @Router /admin/analytics [get]
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	f, ok := parseFilter(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid filter parameters")
		return
	}

	summary, err := c.AnalyticsService.Aggregate(f)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary List class labels for filter dropdowns
// @Tags analytics
// @Produce json
// @Success 200 {object} util.Response
// @Router /school/analytics/classes [get]
func (c *AnalyticsController) GetClasses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	schoolID := claims.SchoolID
	if claims.Role == model.RoleAdmin {
		if v := ctx.Query("schoolId"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				util.BadRequest(ctx, "invalid school id")
				return
			}
			schoolID = uint(id)
		}
	}
	if schoolID == 0 {
		util.BadRequest(ctx, "school id is required")
		return
	}

	classes, err := c.AnalyticsService.DistinctClasses(schoolID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"classes": classes})
}
