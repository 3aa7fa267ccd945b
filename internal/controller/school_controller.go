package controller

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SchoolController struct {
	SchoolService  *service.SchoolService
	StorageService *service.StorageService
}

func NewSchoolController(schoolService *service.SchoolService, storageService *service.StorageService) *SchoolController {
	return &SchoolController{SchoolService: schoolService, StorageService: storageService}
}

// @Summary Register a school
// @Description Creates a school with a generated login code and one-time password
// @Tags schools
// @Accept json
// @Produce json
// @Param body body service.SchoolRequest true "School"
// @Success 201 {object} util.Response
// @Router /admin/schools [post]
func (c *SchoolController) Register(ctx *gin.Context) {
	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	registered, err := c.SchoolService.Register(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, registered)
}

// @Summary List schools
// @Tags schools
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /admin/schools [get]
func (c *SchoolController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	schools, total, err := c.SchoolService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: schools, Total: total, Page: page, Limit: limit})
}

// @Summary Get a school
// @Tags schools
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} util.Response
// @Router /admin/schools/{id} [get]
func (c *SchoolController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}

	school, err := c.SchoolService.Get(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, school)
}

// @Summary Update a school
// @Tags schools
// @Accept json
// @Produce json
// @Param id path int true "School ID"
// @Param body body service.SchoolRequest true "School"
// @Success 200 {object} util.Response
// @Router /admin/schools/{id} [put]
func (c *SchoolController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}

	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.Update(uint(id), req)
	if err != nil {
		if err == util.ErrSchoolNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, school)
}

// @Summary Upload a school logo
// @Tags schools
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "School ID"
// @Param logo formData file true "Logo image"
// @Success 200 {object} util.Response
// @Router /admin/schools/{id}/logo [post]
func (c *SchoolController) UploadLogo(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}

	file, header, err := ctx.Request.FormFile("logo")
	if err != nil {
		util.BadRequest(ctx, "logo file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		util.BadRequest(ctx, "logo must be an image")
		return
	}

	filename := fmt.Sprintf("logos/%d-%s%s", id, uuid.New().String()[:8], filepath.Ext(header.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.SchoolService.SetLogo(uint(id), url); err != nil {
		if err == util.ErrSchoolNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"logoUrl": url})
}

// @Summary Reset a school's password
// @Tags schools
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} util.Response
// @Router /admin/schools/{id}/reset-password [post]
func (c *SchoolController) ResetPassword(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}

	password, err := c.SchoolService.ResetPassword(uint(id))
	if err != nil {
		if err == util.ErrSchoolNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"password": password})
}

// @Summary Delete a school
// @Description Removes the school, its students and their submissions
// @Tags schools
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} util.Response
// @Router /admin/schools/{id} [delete]
func (c *SchoolController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid school id")
		return
	}

	if err := c.SchoolService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
