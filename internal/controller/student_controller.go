package controller

import (
	"strconv"

	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// schoolScope resolves which school the caller may manage: school accounts
// are pinned to their own school, admins pass ?schoolId=.
func schoolScope(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return 0, false
	}
	if claims.Role == model.RoleSchool {
		return claims.SchoolID, claims.SchoolID != 0
	}
	id, err := strconv.ParseUint(ctx.Query("schoolId"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// @Summary Create a student
// @Description Registers a student and generates their access ID
// @Tags students
// @Accept json
// @Produce json
// @Param body body service.StudentRequest true "Student"
// @Success 201 {object} util.Response
// @Router /school/students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		util.BadRequest(ctx, "school id is required")
		return
	}

	var req service.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.Create(schoolID, req)
	if err != nil {
		if err == util.ErrSchoolNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, student)
}

type batchCreateRequest struct {
	Students []service.StudentRequest `json:"students" binding:"required,min=1,dive"`
}

// @Summary Create students in bulk
// @Description Registers a roster of students with generated access IDs
// @Tags students
// @Accept json
// @Produce json
// @Param body body batchCreateRequest true "Roster"
// @Success 201 {object} util.Response
// @Router /school/students/batch [post]
func (c *StudentController) CreateBatch(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		util.BadRequest(ctx, "school id is required")
		return
	}

	var req batchCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	students, err := c.StudentService.CreateBatch(schoolID, req.Students)
	if err != nil {
		if err == util.ErrSchoolNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, students)
}

// @Summary List students
// @Tags students
// @Produce json
// @Param class query string false "Class filter"
// @Param section query string false "Section filter"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /school/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		util.BadRequest(ctx, "school id is required")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	students, total, err := c.StudentService.ListBySchool(schoolID, ctx.Query("class"), ctx.Query("section"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: students, Total: total, Page: page, Limit: limit})
}

// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body service.StudentRequest true "Student"
// @Success 200 {object} util.Response
// @Router /school/students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	var req service.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.Update(uint(id), req)
	if err != nil {
		if err == util.ErrStudentNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, student)
}

// @Summary Delete a student
// @Description Removes the student and their submissions
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} util.Response
// @Router /school/students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	if err := c.StudentService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
